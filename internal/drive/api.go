// Package drive talks to the remote Google Drive v3 storage service. It owns
// pagination, field projection, call pacing, and the mapping of API failures
// onto the service's error taxonomy. Everything above it consumes the API
// interface so tests can swap in the in-memory mock.
package drive

import (
	"context"
	"io"

	"drive-file-copy/internal/model"
)

// Download is one file's content stream plus the metadata a preview layer
// needs to render it. The caller owns Content and must close it.
type Download struct {
	Content     io.ReadCloser
	ContentType string
}

type API interface {
	// ListFolders returns every non-trashed folder visible to the session,
	// with parent references, across all pages.
	ListFolders(ctx context.Context) ([]model.FolderRecord, error)

	// ListFilesInFolder returns every non-folder child of folderID, across
	// all pages, in the service's name order.
	ListFilesInFolder(ctx context.Context, folderID string) ([]model.FileRecord, error)

	// CopyFile duplicates fileID into destFolderID under fileName and
	// returns the new file's id. The source file is never touched.
	CopyFile(ctx context.Context, fileID string, fileName string, destFolderID string) (string, error)

	// GetFileMetadata fetches one file's metadata.
	GetFileMetadata(ctx context.Context, fileID string) (model.FileMetadata, error)

	// DownloadFile streams one file's content.
	DownloadFile(ctx context.Context, fileID string) (*Download, error)
}
