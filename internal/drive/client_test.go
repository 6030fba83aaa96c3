package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	googledrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"drive-file-copy/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	svc, err := googledrive.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication())
	require.NoError(t, err)

	return NewClient(svc, 1000, 0, 0), srv
}

func writeAPIError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

func TestListFolders(t *testing.T) {
	t.Parallel()

	t.Run("follows continuation tokens across pages", func(t *testing.T) {
		var tokens []string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("pageToken")
			tokens = append(tokens, token)

			w.Header().Set("Content-Type", "application/json")
			switch token {
			case "":
				_ = json.NewEncoder(w).Encode(googledrive.FileList{
					Files: []*googledrive.File{
						{Id: "a", Name: "Alpha", Parents: []string{"root"}},
					},
					NextPageToken: "page-2",
				})
			case "page-2":
				_ = json.NewEncoder(w).Encode(googledrive.FileList{
					Files: []*googledrive.File{
						{Id: "b", Name: "Beta", Parents: []string{"a"}},
					},
				})
			default:
				writeAPIError(w, http.StatusBadRequest, "unexpected page token")
			}
		}))

		records, err := client.ListFolders(context.Background())

		require.NoError(t, err)
		require.Equal(t, []string{"", "page-2"}, tokens)
		require.Equal(t, []model.FolderRecord{
			{ID: "a", Name: "Alpha", Parents: []string{"root"}},
			{ID: "b", Name: "Beta", Parents: []string{"a"}},
		}, records)
	})

	t.Run("a failing page aborts the whole listing", func(t *testing.T) {
		calls := 0
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(googledrive.FileList{
					Files:         []*googledrive.File{{Id: "a", Name: "Alpha"}},
					NextPageToken: "page-2",
				})
				return
			}
			writeAPIError(w, http.StatusInternalServerError, "backend hiccup")
		}))

		records, err := client.ListFolders(context.Background())

		require.ErrorIs(t, err, model.ErrTransport)
		require.Nil(t, records)
	})

	t.Run("expired credentials surface distinctly", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeAPIError(w, http.StatusUnauthorized, "Invalid Credentials")
		}))

		_, err := client.ListFolders(context.Background())

		require.ErrorIs(t, err, model.ErrAuthExpired)
	})
}

func TestListFilesInFolder(t *testing.T) {
	t.Parallel()

	t.Run("scopes the query to the folder and excludes folders", func(t *testing.T) {
		var query string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query().Get("q")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(googledrive.FileList{
				Files: []*googledrive.File{
					{Id: "1", Name: "photo.jpg", MimeType: "image/jpeg"},
				},
			})
		}))

		records, err := client.ListFilesInFolder(context.Background(), "folder-1")

		require.NoError(t, err)
		require.Contains(t, query, "'folder-1' in parents")
		require.Contains(t, query, "mimeType!='application/vnd.google-apps.folder'")
		require.Contains(t, query, "trashed=false")
		require.Equal(t, []model.FileRecord{
			{ID: "1", Name: "photo.jpg", MimeType: "image/jpeg"},
		}, records)
	})

	t.Run("escapes quotes in the folder id", func(t *testing.T) {
		var query string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query().Get("q")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(googledrive.FileList{})
		}))

		_, err := client.ListFilesInFolder(context.Background(), "fold'er")

		require.NoError(t, err)
		require.Contains(t, query, `'fold\'er' in parents`)
	})
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	t.Run("copies into the destination folder", func(t *testing.T) {
		var body googledrive.File
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(googledrive.File{Id: "copy-1"})
		}))

		id, err := client.CopyFile(context.Background(), "file-1", "photo.jpg", "dest-1")

		require.NoError(t, err)
		require.Equal(t, "copy-1", id)
		require.Equal(t, "photo.jpg", body.Name)
		require.Equal(t, []string{"dest-1"}, body.Parents)
	})

	t.Run("maps a vanished source to a not-found error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeAPIError(w, http.StatusNotFound, "File not found")
		}))

		_, err := client.CopyFile(context.Background(), "gone", "x.txt", "dest")

		require.ErrorIs(t, err, model.ErrFileNotFound)
	})
}

func TestGetFileMetadata(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(googledrive.File{
			Id: "f1", Name: "doc.pdf", MimeType: "application/pdf", Size: 1234,
		})
	}))

	meta, err := client.GetFileMetadata(context.Background(), "f1")

	require.NoError(t, err)
	require.Equal(t, model.FileMetadata{
		ID: "f1", Name: "doc.pdf", MimeType: "application/pdf", Size: 1234,
	}, meta)
}
