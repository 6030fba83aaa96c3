//go:build integration

package integration

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"drive-file-copy/internal/config"
	"drive-file-copy/internal/drive"
	"drive-file-copy/internal/event"
	"drive-file-copy/internal/handler"
	"drive-file-copy/internal/router"
	"drive-file-copy/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:        "0",
		RequestTimeout:    10 * time.Second,
		RateLimitRPM:      10000,
		AuthRateLimitRPM:  10000,
		StreamMaxDuration: time.Minute,
		StreamIdleTimeout: 30 * time.Second,
	}
}

// newTestServer wires the full router over an in-memory drive, with auth and
// history disabled.
func newTestServer(t *testing.T, mock *drive.Mock) *httptest.Server {
	t.Helper()

	bus := event.NewBus()
	files := service.NewFileService(mock)
	copies := service.NewCopyService(mock, files, bus, nil, discardLogger())

	h := router.New(testConfig(), nil, router.Handlers{
		Catalog: handler.NewCatalogHandler(service.NewCatalogService(mock, bus)),
		Files:   handler.NewFilesHandler(files),
		Copy:    handler.NewCopyHandler(copies),
		Events:  handler.NewEventsHandler(bus),
		Health:  handler.NewHealthHandler(nil),
	})

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return server
}

func doJSONRequest(t *testing.T, method string, url string, payload []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}
