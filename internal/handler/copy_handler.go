package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"drive-file-copy/internal/model"
	"drive-file-copy/internal/service"
)

type CopyHandler struct {
	copies *service.CopyService
}

func NewCopyHandler(copies *service.CopyService) *CopyHandler {
	return &CopyHandler{copies: copies}
}

// StartCopy runs one copy batch synchronously and returns its outcome.
func (h *CopyHandler) StartCopy(w http.ResponseWriter, r *http.Request) {
	var req model.CopyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.copies.StartBatch(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

// ListBatches returns recent copy batches from history.
func (h *CopyHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	batches, err := h.copies.ListBatches(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, batches)
}

// GetBatch returns one batch with its per-item results.
func (h *CopyHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	batch, items, err := h.copies.GetBatch(r.Context(), batchID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"batch": batch,
		"items": items,
	})
}
