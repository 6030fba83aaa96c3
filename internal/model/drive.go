package model

// FolderRecord is a read-only reflection of one folder as returned by the
// remote storage listing. Parents carries the raw multi-parent references the
// service may still return; only the first entry is authoritative for path
// placement so the catalog stays a tree rather than a DAG.
type FolderRecord struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Parents []string `json:"parents,omitempty"`
}

// FileRecord is a transient, per-listing reflection of one non-folder item.
type FileRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
}

// FileListItem is a FileRecord annotated with a display label that is unique
// within one listing, so a picker can show duplicate names side by side.
type FileListItem struct {
	FileRecord
	DisplayLabel string `json:"display_label"`
}

// PathEntry maps a human-readable full folder path to a folder id. Labels are
// unique within one catalog snapshot; collisions carry an ordinal suffix.
type PathEntry struct {
	Label    string `json:"label"`
	FolderID string `json:"folder_id"`
}

// FilePair identifies one concrete file to copy, by id and display name.
type FilePair struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
}

// ResolutionResult is the outcome of resolving user-typed names inside one
// folder. Matched can fan out beyond the requested count when several files
// share a name, and shrink below it when names stay unresolved.
type ResolutionResult struct {
	Matched    []FilePair `json:"matched"`
	Unresolved []string   `json:"unresolved"`
}

// CopyItemError records one failed copy item without aborting its siblings.
type CopyItemError struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// CopyOutcome aggregates one copy batch. A batch with both successes and
// failures is reported exactly like this, never collapsed into a blanket
// success or failure.
type CopyOutcome struct {
	Attempted     int             `json:"attempted"`
	Succeeded     int             `json:"succeeded"`
	PerItemErrors []CopyItemError `json:"per_item_errors"`
}

// FileMetadata is the pass-through metadata shape consumed by external
// preview layers.
type FileMetadata struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size,omitempty"`
}
