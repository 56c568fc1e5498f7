// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/flipforge/flip-forecast/pkg/deal"
	"github.com/flipforge/flip-forecast/pkg/underwrite"
	"github.com/spf13/viper"
)

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// Configuration holds all configuration for flip-forecast: the deal under
// analysis, an optional loan underwriting request, the loan product catalog,
// and runtime options.
type Configuration struct {
	Deal     deal.Input               `mapstructure:"deal"`
	Loan     *LoanRequest             `mapstructure:"loan"`
	Products []underwrite.LoanProduct `mapstructure:"products"`
	Logging  LoggingConfig            `mapstructure:"logging"`
	Output   OutputConfig             `mapstructure:"output"`
}

// LoanRequest pairs an underwriting input with the catalog product it is
// evaluated against. ShowSchedule prints the full amortization schedule for
// amortized products.
type LoanRequest struct {
	Product      string               `mapstructure:"product"`
	ShowSchedule bool                 `mapstructure:"showSchedule"`
	Input        underwrite.LoanInput `mapstructure:",squash"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Normalize()
	return &configuration, nil
}

// Normalize applies defaults: the deal's hold period and tranche cap, and
// the built-in product catalog when none is configured.
func (conf *Configuration) Normalize() {
	conf.Deal.ApplyDefaults()
	if len(conf.Products) == 0 {
		conf.Products = DefaultProducts()
	}
}

// FindProduct looks up a catalog entry by name.
func (conf *Configuration) FindProduct(name string) (underwrite.LoanProduct, error) {
	for _, product := range conf.Products {
		if product.Name == name {
			return product, nil
		}
	}
	return underwrite.LoanProduct{}, fmt.Errorf("unknown loan product %q", name)
}
