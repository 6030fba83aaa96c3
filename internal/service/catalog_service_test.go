package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"drive-file-copy/internal/drive"
	"drive-file-copy/internal/model"
)

func TestBuildPaths(t *testing.T) {
	t.Parallel()

	t.Run("emits one entry per folder plus the synthetic root", func(t *testing.T) {
		records := []model.FolderRecord{
			{ID: "a", Name: "Photos", Parents: []string{"root"}},
			{ID: "b", Name: "2024", Parents: []string{"a"}},
			{ID: "c", Name: "2025", Parents: []string{"a"}},
		}

		entries := BuildPaths(records)

		require.Len(t, entries, len(records)+1)
		require.Equal(t, "My Drive (root)", entries[0].Label)
		require.Equal(t, "root", entries[0].FolderID)
	})

	t.Run("builds full path labels with slash separators", func(t *testing.T) {
		records := []model.FolderRecord{
			{ID: "a", Name: "Photos", Parents: []string{"root"}},
			{ID: "b", Name: "2024", Parents: []string{"a"}},
		}

		entries := BuildPaths(records)

		labels := make(map[string]string, len(entries))
		for _, e := range entries {
			labels[e.FolderID] = e.Label
		}
		require.Equal(t, "My Drive (root)/Photos", labels["a"])
		require.Equal(t, "My Drive (root)/Photos/2024", labels["b"])
	})

	t.Run("only the first parent places a folder", func(t *testing.T) {
		records := []model.FolderRecord{
			{ID: "a", Name: "Alpha", Parents: []string{"root"}},
			{ID: "b", Name: "Beta", Parents: []string{"root"}},
			{ID: "c", Name: "Shared", Parents: []string{"a", "b"}},
		}

		entries := BuildPaths(records)

		require.Len(t, entries, 4)
		var label string
		for _, e := range entries {
			if e.FolderID == "c" {
				label = e.Label
			}
		}
		require.Equal(t, "My Drive (root)/Alpha/Shared", label)
	})

	t.Run("terminates on parent cycles without duplicating nodes", func(t *testing.T) {
		records := []model.FolderRecord{
			{ID: "a", Name: "A", Parents: []string{"b"}},
			{ID: "b", Name: "B", Parents: []string{"a"}},
			{ID: "ok", Name: "OK", Parents: []string{"root"}},
		}

		entries := BuildPaths(records)

		seen := map[string]int{}
		for _, e := range entries {
			seen[e.FolderID]++
		}
		for id, count := range seen {
			require.Equal(t, 1, count, "folder %s emitted more than once", id)
		}
	})

	t.Run("orphans surface directly under the root with their subtrees", func(t *testing.T) {
		records := []model.FolderRecord{
			{ID: "lost", Name: "Lost", Parents: []string{"gone"}},
			{ID: "child", Name: "Child", Parents: []string{"lost"}},
			{ID: "floating", Name: "Floating"},
		}

		entries := BuildPaths(records)

		labels := make(map[string]string, len(entries))
		for _, e := range entries {
			labels[e.FolderID] = e.Label
		}
		require.Equal(t, "My Drive (root)/Lost", labels["lost"])
		require.Equal(t, "My Drive (root)/Lost/Child", labels["child"])
		require.Equal(t, "My Drive (root)/Floating", labels["floating"])
	})

	t.Run("duplicate labels get deterministic ordinal suffixes", func(t *testing.T) {
		records := []model.FolderRecord{
			{ID: "f2", Name: "Reports", Parents: []string{"root"}},
			{ID: "f1", Name: "Reports", Parents: []string{"root"}},
		}

		first := BuildPaths(records)
		second := BuildPaths([]model.FolderRecord{records[1], records[0]})

		require.Equal(t, first, second, "catalog must not depend on input order")

		labels := make(map[string]string, len(first))
		for _, e := range first {
			labels[e.FolderID] = e.Label
		}
		// Ties break on folder id, so f1 keeps the bare label.
		require.Equal(t, "My Drive (root)/Reports", labels["f1"])
		require.Equal(t, "My Drive (root)/Reports (2)", labels["f2"])
	})

	t.Run("sorts siblings case-insensitively by name then id", func(t *testing.T) {
		records := []model.FolderRecord{
			{ID: "z", Name: "zebra", Parents: []string{"root"}},
			{ID: "a", Name: "Apple", Parents: []string{"root"}},
			{ID: "m", Name: "mango", Parents: []string{"root"}},
		}

		entries := BuildPaths(records)

		require.Equal(t, []string{"root", "a", "m", "z"}, []string{
			entries[0].FolderID, entries[1].FolderID, entries[2].FolderID, entries[3].FolderID,
		})
	})

	t.Run("empty input yields only the root", func(t *testing.T) {
		entries := BuildPaths(nil)

		require.Len(t, entries, 1)
		require.Equal(t, "root", entries[0].FolderID)
	})
}

func TestBuildFolderCatalog(t *testing.T) {
	t.Parallel()

	t.Run("propagates listing failures", func(t *testing.T) {
		mock := drive.NewMock()
		mock.ListFoldersErr = model.ErrTransport

		svc := NewCatalogService(mock, nil)
		_, err := svc.BuildFolderCatalog(context.Background())

		require.ErrorIs(t, err, model.ErrTransport)
	})

	t.Run("returns the catalog built from the live listing", func(t *testing.T) {
		mock := drive.NewMock()
		mock.SetFolders([]model.FolderRecord{
			{ID: "a", Name: "Docs", Parents: []string{"root"}},
		})

		svc := NewCatalogService(mock, nil)
		entries, err := svc.BuildFolderCatalog(context.Background())

		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, 1, mock.ListFoldersCalls)
	})
}
