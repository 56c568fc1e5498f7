// Package server exposes the analysis engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/flipforge/flip-forecast/internal/store"
	"github.com/flipforge/flip-forecast/pkg/amortize"
	"github.com/flipforge/flip-forecast/pkg/constants"
	"github.com/flipforge/flip-forecast/pkg/deal"
	"github.com/flipforge/flip-forecast/pkg/underwrite"
	"github.com/flipforge/flip-forecast/pkg/validation"
)

type handler struct {
	logger          *zap.Logger
	store           *store.Store
	products        []underwrite.LoanProduct
	underwriter     *underwrite.Underwriter
	maxRequestBytes int64
	version         string
}

// Options configures NewHandler.
type Options struct {
	Logger          *zap.Logger
	Store           *store.Store
	Products        []underwrite.LoanProduct
	MaxRequestBytes int64
	Version         string
}

// NewHandler constructs the HTTP handler serving the analysis API.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxRequestBytes := opts.MaxRequestBytes
	if maxRequestBytes <= 0 {
		maxRequestBytes = constants.DefaultMaxRequestBytes
	}

	version := opts.Version
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:          logger,
		store:           opts.Store,
		products:        opts.Products,
		underwriter:     underwrite.NewUnderwriter(logger),
		maxRequestBytes: maxRequestBytes,
		version:         version,
	}

	limiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)
	r.Use(rateLimitMiddleware(limiter, logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze/flip", h.handleAnalyzeFlip)
		r.Post("/analyze/loan", h.handleAnalyzeLoan)
		r.Get("/products", h.handleProducts)
		r.Get("/analyses", h.handleListAnalyses)
		r.Get("/analyses/{id}", h.handleGetAnalysis)
		r.Delete("/analyses/{id}", h.handleDeleteAnalysis)
		r.Get("/version", h.handleVersion)
	})

	return r
}

func rateLimitMiddleware(limiter *rate.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("rate limit exceeded",
					zap.String("op", "server.rateLimit"),
					zap.String("path", r.URL.Path),
				)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request handled",
			zap.String("op", "server.request"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}

func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

type flipResponse struct {
	ID       string                  `json:"id,omitempty"`
	Analysis underwrite.FlipAnalysis `json:"analysis"`
}

func (h *handler) handleAnalyzeFlip(w http.ResponseWriter, r *http.Request) {
	var input deal.Input
	if !h.decodeRequest(w, r, &input) {
		return
	}

	if err := validation.ValidateDealInput(input); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	input.ApplyDefaults()

	analysis := underwrite.EvaluateFlipDeal(input)
	resp := flipResponse{Analysis: analysis}

	if h.store != nil {
		record, err := h.store.SaveFlip(r.Context(), input, analysis)
		if err != nil {
			h.logger.Error("failed to save flip analysis",
				zap.String("op", "server.handleAnalyzeFlip"),
				zap.Error(err),
			)
		} else {
			resp.ID = record.ID
		}
	}

	h.respondJSON(w, http.StatusOK, resp)
}

type loanRequest struct {
	Product         string `json:"product"`
	IncludeSchedule bool   `json:"includeSchedule,omitempty"`
	underwrite.LoanInput
}

type loanResponse struct {
	ID       string                `json:"id,omitempty"`
	Result   underwrite.LoanResult `json:"result"`
	Schedule []amortize.Payment    `json:"schedule,omitempty"`
}

func (h *handler) handleAnalyzeLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}

	product, ok := h.findProduct(req.Product)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown loan product %q", req.Product))
		return
	}

	if err := validation.ValidateLoanInput(req.LoanInput); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result := h.underwriter.EvaluateLoan(req.LoanInput, product)
	resp := loanResponse{Result: result}
	if req.IncludeSchedule {
		resp.Schedule = h.underwriter.AmortizationSchedule(req.LoanInput, product)
	}

	if h.store != nil {
		record, err := h.store.SaveLoan(r.Context(), req.LoanInput, result)
		if err != nil {
			h.logger.Error("failed to save loan analysis",
				zap.String("op", "server.handleAnalyzeLoan"),
				zap.Error(err),
			)
		} else {
			resp.ID = record.ID
		}
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *handler) findProduct(name string) (underwrite.LoanProduct, bool) {
	for _, product := range h.products {
		if product.Name == name {
			return product, true
		}
	}
	return underwrite.LoanProduct{}, false
}

func (h *handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.products)
}

func (h *handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "analysis store not configured")
		return
	}
	records, err := h.store.List(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	h.respondJSON(w, http.StatusOK, records)
}

func (h *handler) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "analysis store not configured")
		return
	}
	record, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "analysis not found")
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}
	h.respondJSON(w, http.StatusOK, record)
}

func (h *handler) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "analysis store not configured")
		return
	}
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "analysis not found")
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to delete analysis")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}
