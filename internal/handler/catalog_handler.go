package handler

import (
	"net/http"

	"drive-file-copy/internal/model"
	"drive-file-copy/internal/service"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetCatalog rebuilds and returns the full folder catalog.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	folders, err := h.catalog.BuildFolderCatalog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.CatalogResponse{Folders: folders})
}
