package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shaharia-lab/bankalerts/internal/service"
)

const errInvalidJSONBody = "invalid JSON body"

// Server holds all dependencies for the REST API handlers.
type Server struct {
	notificationSvc service.NotificationService
	logger          *slog.Logger
}

// New creates a new API Server backed by the provided service.
func New(notificationSvc service.NotificationService, logger *slog.Logger) *Server {
	return &Server{
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Post("/transactions/high-value", s.handleHighValueTransaction)
		r.Post("/accounts/status-change", s.handleAccountStatusChange)
		r.Post("/accounts/events", s.handleAccountEvent)

		// Operator checks for delivery credentials
		r.Post("/test/email", s.handleTestEmail)
		r.Post("/test/sms", s.handleTestSMS)
	})

	r.Get("/version", s.handleVersion)
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
