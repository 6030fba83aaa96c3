package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"drive-file-copy/internal/model"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"

	folderQuery = "mimeType='" + folderMimeType + "' and trashed=false"
)

// Client implements API against a live Drive v3 service. All calls run
// through a shared rate limiter so a large catalog rebuild or copy batch
// stays inside the API quota. The client is designed for sequential use; the
// caller adds its own synchronization if it shares one across goroutines.
type Client struct {
	svc      *drive.Service
	limiter  *rate.Limiter
	pageSize int64
}

func NewClient(svc *drive.Service, pageSize int64, qps float64, burst int) *Client {
	if pageSize <= 0 || pageSize > 1000 {
		pageSize = 1000
	}
	if burst <= 0 {
		burst = 1
	}

	var limiter *rate.Limiter
	if qps > 0 {
		limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}

	return &Client{svc: svc, limiter: limiter, pageSize: pageSize}
}

func (c *Client) ListFolders(ctx context.Context) ([]model.FolderRecord, error) {
	files, err := c.listAll(ctx, folderQuery, "nextPageToken, files(id, name, parents)", "")
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	records := make([]model.FolderRecord, 0, len(files))
	for _, f := range files {
		records = append(records, model.FolderRecord{ID: f.Id, Name: f.Name, Parents: f.Parents})
	}

	return records, nil
}

func (c *Client) ListFilesInFolder(ctx context.Context, folderID string) ([]model.FileRecord, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType!='%s' and trashed=false",
		escapeQueryValue(folderID), folderMimeType)

	files, err := c.listAll(ctx, query, "nextPageToken, files(id, name, mimeType)", "name")
	if err != nil {
		return nil, fmt.Errorf("list files in folder %s: %w", folderID, err)
	}

	records := make([]model.FileRecord, 0, len(files))
	for _, f := range files {
		records = append(records, model.FileRecord{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
	}

	return records, nil
}

// listAll follows continuation tokens until the service stops returning one.
// Pages are requested strictly one after another; the server does not
// guarantee token independence across concurrent requests. Any page failure
// aborts the whole listing, a half-built folder index is worse than none.
func (c *Client) listAll(ctx context.Context, query string, fields googleapi.Field, orderBy string) ([]*drive.File, error) {
	var all []*drive.File
	pageToken := ""

	for {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Files.List().
			Q(query).
			PageSize(c.pageSize).
			Fields(fields).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(false).
			Context(ctx)
		if orderBy != "" {
			call = call.OrderBy(orderBy)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, mapAPIError(err)
		}

		all = append(all, page.Files...)

		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) CopyFile(ctx context.Context, fileID string, fileName string, destFolderID string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	copied, err := c.svc.Files.Copy(fileID, &drive.File{
		Name:    fileName,
		Parents: []string{destFolderID},
	}).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("copy file %s: %w", fileID, mapAPIError(err))
	}

	return copied.Id, nil
}

func (c *Client) GetFileMetadata(ctx context.Context, fileID string) (model.FileMetadata, error) {
	if err := c.wait(ctx); err != nil {
		return model.FileMetadata{}, err
	}

	f, err := c.svc.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields("id, name, mimeType, size").
		Context(ctx).
		Do()
	if err != nil {
		return model.FileMetadata{}, fmt.Errorf("get metadata for %s: %w", fileID, mapAPIError(err))
	}

	return model.FileMetadata{ID: f.Id, Name: f.Name, MimeType: f.MimeType, Size: f.Size}, nil
}

func (c *Client) DownloadFile(ctx context.Context, fileID string) (*Download, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, mapAPIError(err))
	}

	return &Download{Content: resp.Body, ContentType: resp.Header.Get("Content-Type")}, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// mapAPIError sorts remote failures into the error taxonomy the caller keys
// on: expired credentials need re-authentication, missing files are the
// item's own problem, everything else is a transport failure that is not
// retried here.
func mapAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", model.ErrAuthExpired, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", model.ErrFileNotFound, err)
		}
	}

	return fmt.Errorf("%w: %w", model.ErrTransport, err)
}

// escapeQueryValue escapes a value interpolated into a Drive query string.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
