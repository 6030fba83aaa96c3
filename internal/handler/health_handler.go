package handler

import (
	"net/http"
	"time"

	"drive-file-copy/internal/database"
	"drive-file-copy/internal/model"
)

type HealthHandler struct {
	db      *database.Database
	started time.Time
}

func NewHealthHandler(db *database.Database) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}

	if h.db != nil {
		if err := h.db.Health(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, model.APIResponse{Success: false, Data: status})
			return
		}
		status["database"] = "ok"
	}

	writeSuccess(w, http.StatusOK, status)
}
