package model

import "time"

// CopyBatch is the persisted summary of one executed copy batch.
type CopyBatch struct {
	BatchID         string    `json:"batch_id"`
	SourceFolderID  string    `json:"source_folder_id"`
	DestFolderID    string    `json:"dest_folder_id"`
	Attempted       int       `json:"attempted"`
	Succeeded       int       `json:"succeeded"`
	Failed          int       `json:"failed"`
	UnresolvedNames []string  `json:"unresolved_names"`
	CreatedAt       time.Time `json:"created_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// CopyItemResult is the persisted per-item record of a batch.
type CopyItemResult struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}
