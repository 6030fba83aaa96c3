package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"drive-file-copy/internal/drive"
	"drive-file-copy/internal/model"
)

// FileService serves per-folder file listings through an in-memory cache and
// resolves user-supplied file names against a folder's contents.
type FileService struct {
	drive drive.API

	mu    sync.Mutex
	cache map[string][]model.FileRecord
}

func NewFileService(api drive.API) *FileService {
	return &FileService{
		drive: api,
		cache: make(map[string][]model.FileRecord),
	}
}

// ListFiles returns the annotated file listing for a folder. A cached listing
// is reused until refresh forces a refetch. The second return reports whether
// the listing came from the cache.
func (s *FileService) ListFiles(ctx context.Context, folderID string, refresh bool) ([]model.FileListItem, bool, error) {
	records, fromCache, err := s.listRecords(ctx, folderID, refresh)
	if err != nil {
		return nil, false, err
	}
	return annotateDuplicates(records), fromCache, nil
}

// Invalidate drops the cached listing for a folder, typically after copies
// landed new files in it.
func (s *FileService) Invalidate(folderID string) {
	s.mu.Lock()
	delete(s.cache, folderID)
	s.mu.Unlock()
}

func (s *FileService) listRecords(ctx context.Context, folderID string, refresh bool) ([]model.FileRecord, bool, error) {
	if !refresh {
		s.mu.Lock()
		cached, ok := s.cache[folderID]
		s.mu.Unlock()
		if ok {
			return cached, true, nil
		}
	}

	records, err := s.drive.ListFilesInFolder(ctx, folderID)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	s.cache[folderID] = records
	s.mu.Unlock()

	return records, false, nil
}

// ResolveNames matches requested file names against the folder's listing.
//
// Matching is case-insensitive, in two tiers: exact name first, then base
// name with the final extension stripped, so "7B1A0431" finds
// "7B1A0431.JPG". Every file carrying a matched name is returned, which is
// how duplicate names fan out into multiple copies. Matches are ordered by
// requested name, then by listing order within a name. Names with no match
// in either tier come back in Unresolved in request order.
func (s *FileService) ResolveNames(ctx context.Context, folderID string, names []string) (model.ResolutionResult, error) {
	requested := make([]string, 0, len(names))
	for _, n := range names {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			requested = append(requested, trimmed)
		}
	}

	result := model.ResolutionResult{
		Matched:    []model.FilePair{},
		Unresolved: []string{},
	}
	if len(requested) == 0 {
		return result, nil
	}

	records, _, err := s.listRecords(ctx, folderID, false)
	if err != nil {
		return model.ResolutionResult{}, err
	}

	exact := make(map[string][]model.FileRecord, len(records))
	base := make(map[string][]model.FileRecord, len(records))
	for _, rec := range records {
		key := strings.ToLower(rec.Name)
		exact[key] = append(exact[key], rec)
		base[baseName(key)] = append(base[baseName(key)], rec)
	}

	for _, name := range requested {
		key := strings.ToLower(name)
		hits, ok := exact[key]
		if !ok {
			hits, ok = base[baseName(key)]
		}
		if !ok {
			result.Unresolved = append(result.Unresolved, name)
			continue
		}
		for _, rec := range hits {
			result.Matched = append(result.Matched, model.FilePair{FileID: rec.ID, FileName: rec.Name})
		}
	}

	return result, nil
}

// FileMetadata fetches metadata for a single file, bypassing the listing
// cache.
func (s *FileService) FileMetadata(ctx context.Context, fileID string) (model.FileMetadata, error) {
	return s.drive.GetFileMetadata(ctx, fileID)
}

// OpenFile streams a file's content. The caller owns the returned body.
func (s *FileService) OpenFile(ctx context.Context, fileID string) (*drive.Download, error) {
	return s.drive.DownloadFile(ctx, fileID)
}

// baseName strips the final dot-separated segment from an already lowercased
// key. Only the last segment counts as the extension, so
// "archive.tar.gz" keeps "archive.tar".
func baseName(key string) string {
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		return key[:idx]
	}
	return key
}

// annotateDuplicates gives repeated file names ordinal display labels, in
// listing order, so callers can tell same-named files apart.
func annotateDuplicates(records []model.FileRecord) []model.FileListItem {
	seen := make(map[string]int, len(records))
	items := make([]model.FileListItem, 0, len(records))
	for _, rec := range records {
		seen[rec.Name]++
		label := rec.Name
		if n := seen[rec.Name]; n > 1 {
			label = fmt.Sprintf("%s (%d)", rec.Name, n)
		}
		items = append(items, model.FileListItem{FileRecord: rec, DisplayLabel: label})
	}
	return items
}
