// Package store persists evaluated analyses. Input and result are stored as
// opaque JSON records; the store never interprets the formulas behind them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flipforge/flip-forecast/pkg/deal"
	"github.com/flipforge/flip-forecast/pkg/underwrite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no analysis exists for a requested id.
var ErrNotFound = errors.New("analysis not found")

// Analysis kinds.
const (
	KindFlip = "flip"
	KindLoan = "loan"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	address    TEXT NOT NULL DEFAULT '',
	input      TEXT NOT NULL,
	result     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

// Record is one saved analysis.
type Record struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Address   string          `json:"address,omitempty"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Store is a sqlite-backed analysis store.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (creating if necessary) the sqlite database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	// Limit open connections to 1 for SQLite to avoid locking issues
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Debug("analysis store opened",
		zap.String("op", "store.Open"),
		zap.String("path", path),
	)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) save(ctx context.Context, kind, address string, input, result interface{}) (Record, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode input: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode result: %w", err)
	}

	record := Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		Address:   address,
		Input:     inputJSON,
		Result:    resultJSON,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, kind, address, input, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.Kind, record.Address, string(record.Input), string(record.Result), record.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert analysis: %w", err)
	}

	s.logger.Debug("analysis saved",
		zap.String("op", "store.save"),
		zap.String("id", record.ID),
		zap.String("kind", kind),
	)
	return record, nil
}

// SaveFlip persists a flip analysis with its input.
func (s *Store) SaveFlip(ctx context.Context, input deal.Input, analysis underwrite.FlipAnalysis) (Record, error) {
	return s.save(ctx, KindFlip, input.Address, input, analysis)
}

// SaveLoan persists a loan underwriting result with its input.
func (s *Store) SaveLoan(ctx context.Context, input underwrite.LoanInput, result underwrite.LoanResult) (Record, error) {
	return s.save(ctx, KindLoan, "", input, result)
}

// List returns all saved analyses, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, address, input, result, created_at FROM analyses ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Get returns the analysis with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, address, input, result, created_at FROM analyses WHERE id = ?`, id)
	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return record, err
}

// Delete removes the analysis with the given id, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(scan func(dest ...interface{}) error) (Record, error) {
	var record Record
	var input, result string
	if err := scan(&record.ID, &record.Kind, &record.Address, &input, &result, &record.CreatedAt); err != nil {
		return Record{}, err
	}
	record.Input = json.RawMessage(input)
	record.Result = json.RawMessage(result)
	return record, nil
}
