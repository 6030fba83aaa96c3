package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"drive-file-copy/internal/model"
	"drive-file-copy/internal/service"
	"drive-file-copy/pkg/apierror"
)

type FilesHandler struct {
	files *service.FileService
}

func NewFilesHandler(files *service.FileService) *FilesHandler {
	return &FilesHandler{files: files}
}

// ListFiles returns the file children of one folder. ?refresh=true bypasses
// the listing cache.
func (h *FilesHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderID")
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	items, fromCache, err := h.files.ListFiles(r.Context(), folderID, refresh)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.FileListResponse{
		FolderID:  folderID,
		Items:     items,
		FromCache: fromCache,
	})
}

// ResolveNames matches requested file names against a folder's contents.
func (h *FilesHandler) ResolveNames(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderID")

	var req model.ResolveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.files.ResolveNames(r.Context(), folderID, req.Names)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

// GetMetadata returns pass-through metadata for a single file.
func (h *FilesHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	meta, err := h.files.FileMetadata(r.Context(), fileID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, meta)
}

// GetContent streams a file's bytes to the client.
func (h *FilesHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if fileID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "file id is required", "", http.StatusBadRequest))
		return
	}

	download, err := h.files.OpenFile(r.Context(), fileID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer download.Content.Close()

	if download.ContentType != "" {
		w.Header().Set("Content-Type", download.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, download.Content)
}
