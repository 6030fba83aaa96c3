package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"drive-file-copy/internal/model"
)

// Mock implements API in memory for tests and for the other packages' test
// suites. Error fields simulate remote failures; counters track traffic so
// tests can assert how often the "network" was touched.
type Mock struct {
	mu sync.Mutex

	folders       []model.FolderRecord
	filesByFolder map[string][]model.FileRecord
	content       map[string][]byte

	ListFoldersErr error
	ListFilesErr   error
	// CopyErrs fails the copy of specific file ids.
	CopyErrs map[string]error

	ListFoldersCalls int
	ListFilesCalls   int
	Copies           []MockCopy
}

// MockCopy records one CopyFile call.
type MockCopy struct {
	FileID       string
	FileName     string
	DestFolderID string
}

func NewMock() *Mock {
	return &Mock{
		filesByFolder: map[string][]model.FileRecord{},
		content:       map[string][]byte{},
		CopyErrs:      map[string]error{},
	}
}

func (m *Mock) SetFolders(folders []model.FolderRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders = folders
}

func (m *Mock) SetFiles(folderID string, files []model.FileRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filesByFolder[folderID] = files
}

func (m *Mock) SetContent(fileID string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content[fileID] = content
}

func (m *Mock) ListFolders(_ context.Context) ([]model.FolderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListFoldersCalls++
	if m.ListFoldersErr != nil {
		return nil, m.ListFoldersErr
	}

	out := make([]model.FolderRecord, len(m.folders))
	copy(out, m.folders)
	return out, nil
}

func (m *Mock) ListFilesInFolder(_ context.Context, folderID string) ([]model.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListFilesCalls++
	if m.ListFilesErr != nil {
		return nil, m.ListFilesErr
	}

	files := m.filesByFolder[folderID]
	out := make([]model.FileRecord, len(files))
	copy(out, files)
	return out, nil
}

func (m *Mock) CopyFile(_ context.Context, fileID string, fileName string, destFolderID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, exists := m.CopyErrs[fileID]; exists {
		return "", err
	}

	m.Copies = append(m.Copies, MockCopy{FileID: fileID, FileName: fileName, DestFolderID: destFolderID})
	return "copy-of-" + fileID, nil
}

func (m *Mock) GetFileMetadata(_ context.Context, fileID string) (model.FileMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, files := range m.filesByFolder {
		for _, f := range files {
			if f.ID == fileID {
				size := int64(len(m.content[fileID]))
				return model.FileMetadata{ID: f.ID, Name: f.Name, MimeType: f.MimeType, Size: size}, nil
			}
		}
	}

	return model.FileMetadata{}, fmt.Errorf("%w: %s", model.ErrFileNotFound, fileID)
}

func (m *Mock) DownloadFile(_ context.Context, fileID string) (*Download, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, exists := m.content[fileID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", model.ErrFileNotFound, fileID)
	}

	return &Download{
		Content:     io.NopCloser(bytes.NewReader(content)),
		ContentType: "application/octet-stream",
	}, nil
}
