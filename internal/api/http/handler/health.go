package handler

import (
	"context"
	"net/http"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles the deployment probe endpoint.
type Health struct {
	db     Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

// Check reports 200 when the database is reachable, 503 otherwise.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("Health handler: database unreachable", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
