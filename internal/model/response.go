package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type CatalogResponse struct {
	Folders []PathEntry `json:"folders"`
}

type FileListResponse struct {
	FolderID  string         `json:"folder_id"`
	Items     []FileListItem `json:"items"`
	FromCache bool           `json:"from_cache"`
}

type CopyResponse struct {
	BatchID    string      `json:"batch_id"`
	Outcome    CopyOutcome `json:"outcome"`
	Unresolved []string    `json:"unresolved,omitempty"`
}
