package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"drive-file-copy/internal/model"
	"drive-file-copy/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, payload model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, model.APIResponse{Success: true, Data: data})
}

// writeError maps service errors onto the response envelope. Remote storage
// failures are reported as upstream errors so they are not mistaken for
// failures of this service's own auth or routing.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.HTTPStatus, model.APIResponse{
			Success: false,
			Error:   &model.APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details},
		})
		return
	}

	code := "INTERNAL_ERROR"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrAuthExpired):
		code, status = "REMOTE_AUTH_EXPIRED", http.StatusBadGateway
	case errors.Is(err, model.ErrTransport):
		code, status = "REMOTE_UNAVAILABLE", http.StatusBadGateway
	case errors.Is(err, model.ErrFileNotFound),
		errors.Is(err, model.ErrFolderNotFound),
		errors.Is(err, model.ErrBatchNotFound):
		code, status = "NOT_FOUND", http.StatusNotFound
	case errors.Is(err, model.ErrHistoryDisabled):
		code, status = "HISTORY_DISABLED", http.StatusServiceUnavailable
	case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrUnauthorized):
		code, status = "UNAUTHORIZED", http.StatusUnauthorized
	case errors.Is(err, model.ErrInvalidInput):
		code, status = "BAD_REQUEST", http.StatusBadRequest
	}

	writeJSON(w, status, model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: code, Message: err.Error()},
	})
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierror.New("BAD_REQUEST", "invalid request body", err.Error(), http.StatusBadRequest)
	}
	return nil
}
