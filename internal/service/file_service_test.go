package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"drive-file-copy/internal/drive"
	"drive-file-copy/internal/model"
)

func TestResolveNames(t *testing.T) {
	t.Parallel()

	folderFiles := []model.FileRecord{
		{ID: "1", Name: "photo.JPG", MimeType: "image/jpeg"},
		{ID: "2", Name: "photo.jpg", MimeType: "image/jpeg"},
		{ID: "3", Name: "7B1A0431.JPG", MimeType: "image/jpeg"},
		{ID: "4", Name: "Report.pdf", MimeType: "application/pdf"},
		{ID: "5", Name: "Report.pdf", MimeType: "application/pdf"},
		{ID: "6", Name: "archive.tar.gz", MimeType: "application/gzip"},
	}

	newService := func(t *testing.T) (*FileService, *drive.Mock) {
		t.Helper()
		mock := drive.NewMock()
		mock.SetFiles("src", folderFiles)
		return NewFileService(mock), mock
	}

	t.Run("empty request resolves without touching the network", func(t *testing.T) {
		svc, mock := newService(t)

		result, err := svc.ResolveNames(context.Background(), "src", []string{"", "   ", "\t"})

		require.NoError(t, err)
		require.Empty(t, result.Matched)
		require.Empty(t, result.Unresolved)
		require.Zero(t, mock.ListFilesCalls)
	})

	t.Run("exact match is case-insensitive and fans out over duplicates", func(t *testing.T) {
		svc, _ := newService(t)

		result, err := svc.ResolveNames(context.Background(), "src", []string{"PHOTO.JPG"})

		require.NoError(t, err)
		require.Equal(t, []model.FilePair{
			{FileID: "1", FileName: "photo.JPG"},
			{FileID: "2", FileName: "photo.jpg"},
		}, result.Matched)
		require.Empty(t, result.Unresolved)
	})

	t.Run("falls back to base name when the exact name misses", func(t *testing.T) {
		svc, _ := newService(t)

		result, err := svc.ResolveNames(context.Background(), "src", []string{"7B1A0431"})

		require.NoError(t, err)
		require.Equal(t, []model.FilePair{{FileID: "3", FileName: "7B1A0431.JPG"}}, result.Matched)
	})

	t.Run("only the final extension is stripped for base names", func(t *testing.T) {
		svc, _ := newService(t)

		result, err := svc.ResolveNames(context.Background(), "src", []string{"archive.tar"})

		require.NoError(t, err)
		require.Equal(t, []model.FilePair{{FileID: "6", FileName: "archive.tar.gz"}}, result.Matched)
	})

	t.Run("unmatched names come back unresolved in request order", func(t *testing.T) {
		svc, _ := newService(t)

		result, err := svc.ResolveNames(context.Background(), "src",
			[]string{"nosuch.png", "Report.pdf", "alsomissing"})

		require.NoError(t, err)
		require.Equal(t, []string{"nosuch.png", "alsomissing"}, result.Unresolved)
		require.Len(t, result.Matched, 2)
	})

	t.Run("matches keep requested-name-major order", func(t *testing.T) {
		svc, _ := newService(t)

		result, err := svc.ResolveNames(context.Background(), "src",
			[]string{"Report.pdf", "photo.jpg"})

		require.NoError(t, err)
		require.Equal(t, []model.FilePair{
			{FileID: "4", FileName: "Report.pdf"},
			{FileID: "5", FileName: "Report.pdf"},
			{FileID: "1", FileName: "photo.JPG"},
			{FileID: "2", FileName: "photo.jpg"},
		}, result.Matched)
	})

	t.Run("surrounding whitespace is trimmed before matching", func(t *testing.T) {
		svc, _ := newService(t)

		result, err := svc.ResolveNames(context.Background(), "src", []string{"  report.pdf  "})

		require.NoError(t, err)
		require.Len(t, result.Matched, 2)
		require.Empty(t, result.Unresolved)
	})

	t.Run("propagates listing failures", func(t *testing.T) {
		svc, mock := newService(t)
		mock.ListFilesErr = model.ErrTransport

		_, err := svc.ResolveNames(context.Background(), "src", []string{"photo.jpg"})

		require.ErrorIs(t, err, model.ErrTransport)
	})
}

func TestListFiles(t *testing.T) {
	t.Parallel()

	t.Run("second listing is served from the cache", func(t *testing.T) {
		mock := drive.NewMock()
		mock.SetFiles("f", []model.FileRecord{{ID: "1", Name: "a.txt"}})
		svc := NewFileService(mock)

		_, fromCache, err := svc.ListFiles(context.Background(), "f", false)
		require.NoError(t, err)
		require.False(t, fromCache)

		_, fromCache, err = svc.ListFiles(context.Background(), "f", false)
		require.NoError(t, err)
		require.True(t, fromCache)
		require.Equal(t, 1, mock.ListFilesCalls)
	})

	t.Run("refresh bypasses the cache", func(t *testing.T) {
		mock := drive.NewMock()
		mock.SetFiles("f", []model.FileRecord{{ID: "1", Name: "a.txt"}})
		svc := NewFileService(mock)

		_, _, err := svc.ListFiles(context.Background(), "f", false)
		require.NoError(t, err)

		_, fromCache, err := svc.ListFiles(context.Background(), "f", true)
		require.NoError(t, err)
		require.False(t, fromCache)
		require.Equal(t, 2, mock.ListFilesCalls)
	})

	t.Run("invalidate drops one folder's cached listing", func(t *testing.T) {
		mock := drive.NewMock()
		mock.SetFiles("f", []model.FileRecord{{ID: "1", Name: "a.txt"}})
		svc := NewFileService(mock)

		_, _, err := svc.ListFiles(context.Background(), "f", false)
		require.NoError(t, err)

		svc.Invalidate("f")

		_, fromCache, err := svc.ListFiles(context.Background(), "f", false)
		require.NoError(t, err)
		require.False(t, fromCache)
	})

	t.Run("duplicate names get ordinal display labels in listing order", func(t *testing.T) {
		mock := drive.NewMock()
		mock.SetFiles("f", []model.FileRecord{
			{ID: "1", Name: "scan.pdf"},
			{ID: "2", Name: "scan.pdf"},
			{ID: "3", Name: "scan.pdf"},
			{ID: "4", Name: "other.pdf"},
		})
		svc := NewFileService(mock)

		items, _, err := svc.ListFiles(context.Background(), "f", false)

		require.NoError(t, err)
		require.Equal(t, "scan.pdf", items[0].DisplayLabel)
		require.Equal(t, "scan.pdf (2)", items[1].DisplayLabel)
		require.Equal(t, "scan.pdf (3)", items[2].DisplayLabel)
		require.Equal(t, "other.pdf", items[3].DisplayLabel)
	})
}
