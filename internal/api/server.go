// Package api serves the wallet login, entry fee and reward endpoints over
// HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/reward"
	"github.com/vovakirdan/slice-arcade/internal/wallet"
)

// Ledger is the wallet side the API needs.
type Ledger interface {
	wallet.Gate
	Connect(ctx context.Context, player string) (bool, error)
	Fund(ctx context.Context, player string, amount decimal.Decimal) (decimal.Decimal, error)
	Balance(ctx context.Context, player string) (decimal.Decimal, error)
}

// Server handles HTTP requests
type Server struct {
	auth      *wallet.Auth
	ledger    Ledger
	rewards   *reward.Service
	authToken string
	logger    *log.Logger
}

// NewServer creates a new API server. authToken guards nonce issuance; an
// empty token leaves it open.
func NewServer(auth *wallet.Auth, ledger Ledger, rewards *reward.Service, authToken string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		auth:      auth,
		ledger:    ledger,
		rewards:   rewards,
		authToken: authToken,
		logger:    logger,
	}
}

// Routes sets up the HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.With(s.requireStaticToken).Post("/get-nonce", s.handleGetNonce)
		r.Post("/verify-wallet", s.handleVerifyWallet)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/balance", s.handleBalance)
			r.Post("/fund", s.handleFund)
			r.Post("/pay-entry", s.handlePayEntry)
			r.Post("/transfer-tokens", s.handleTransferTokens)
		})
	})

	return r
}

// requestLogger logs each request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// corsMiddleware handles CORS headers for browser clients
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // client went away
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeFailure writes a 500 carrying the cause in details.
func writeFailure(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: message, Details: err.Error()})
}
