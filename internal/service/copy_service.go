package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"drive-file-copy/internal/drive"
	"drive-file-copy/internal/event"
	"drive-file-copy/internal/model"
	"drive-file-copy/pkg/apierror"
)

// BatchHistory persists finished copy batches. A nil BatchHistory disables
// persistence without touching the copy path.
type BatchHistory interface {
	SaveBatch(ctx context.Context, batch model.CopyBatch) error
	SaveItems(ctx context.Context, batchID string, items []model.CopyItemResult) error
	ListBatches(ctx context.Context, limit int) ([]model.CopyBatch, error)
	FindBatch(ctx context.Context, batchID string) (model.CopyBatch, error)
	FindItems(ctx context.Context, batchID string) ([]model.CopyItemResult, error)
}

// ProgressFunc observes one attempted copy. done counts attempted items so
// far, err is nil when the copy succeeded.
type ProgressFunc func(done, total int, item model.FilePair, err error)

// CopyService runs copy batches: resolve names, copy the matched files one
// by one, report progress, and record the outcome.
type CopyService struct {
	drive   drive.API
	files   *FileService
	bus     event.Bus
	history BatchHistory
	log     *slog.Logger
}

func NewCopyService(api drive.API, files *FileService, bus event.Bus, history BatchHistory, log *slog.Logger) *CopyService {
	return &CopyService{drive: api, files: files, bus: bus, history: history, log: log}
}

// CopyAll copies the given files into destFolderID strictly one at a time.
// A failed item is recorded and the batch moves on; only context
// cancellation stops the batch early, between items, leaving the remainder
// unattempted. onProgress fires once per attempted item.
func (s *CopyService) CopyAll(ctx context.Context, pairs []model.FilePair, destFolderID string, onProgress ProgressFunc) model.CopyOutcome {
	outcome := model.CopyOutcome{
		Attempted:     len(pairs),
		PerItemErrors: []model.CopyItemError{},
	}

	for i, pair := range pairs {
		if ctx.Err() != nil {
			outcome.Attempted = i
			break
		}

		_, err := s.drive.CopyFile(ctx, pair.FileID, pair.FileName, destFolderID)
		if err != nil {
			outcome.PerItemErrors = append(outcome.PerItemErrors, model.CopyItemError{
				FileName: pair.FileName,
				Reason:   err.Error(),
			})
		}

		if onProgress != nil {
			onProgress(i+1, len(pairs), pair, err)
		}
	}

	outcome.Succeeded = outcome.Attempted - len(outcome.PerItemErrors)
	return outcome
}

// StartBatch validates the request, resolves names when explicit file pairs
// were not supplied, runs the copies, and returns the batch outcome together
// with any names that matched nothing.
func (s *CopyService) StartBatch(ctx context.Context, req model.CopyRequest) (model.CopyResponse, error) {
	src := strings.TrimSpace(req.SourceFolderID)
	dest := strings.TrimSpace(req.DestFolderID)
	if dest == "" {
		return model.CopyResponse{}, apierror.New("BAD_REQUEST", "destination folder is required", "", 400)
	}

	pairs := req.Files
	var unresolved []string
	if len(pairs) == 0 {
		if src == "" {
			return model.CopyResponse{}, apierror.New("BAD_REQUEST", "source folder is required to resolve file names", "", 400)
		}
		resolution, err := s.files.ResolveNames(ctx, src, req.Names)
		if err != nil {
			return model.CopyResponse{}, err
		}
		pairs = resolution.Matched
		unresolved = resolution.Unresolved
	}
	if unresolved == nil {
		unresolved = []string{}
	}
	if len(pairs) == 0 {
		return model.CopyResponse{}, apierror.New("NO_FILES_MATCHED", "no files matched in the source folder", strings.Join(unresolved, ", "), 404)
	}

	batchID := uuid.NewString()
	createdAt := time.Now().UTC()
	s.publish(event.TypeCopyStarted, map[string]any{
		"batch_id": batchID,
		"total":    len(pairs),
	})

	items := make([]model.CopyItemResult, 0, len(pairs))
	outcome := s.CopyAll(ctx, pairs, dest, func(done, total int, item model.FilePair, err error) {
		result := model.CopyItemResult{FileID: item.FileID, FileName: item.FileName, Status: "ok"}
		payload := map[string]any{
			"batch_id":  batchID,
			"done":      done,
			"total":     total,
			"file_name": item.FileName,
		}
		if err != nil {
			result.Status = "failed"
			result.Error = err.Error()
			payload["error"] = err.Error()
			s.publish(event.TypeCopyItemError, payload)
			s.log.Warn("copy failed", "batch_id", batchID, "file_name", item.FileName, "error", err)
		} else {
			s.publish(event.TypeCopyProgress, payload)
		}
		items = append(items, result)
	})

	finishedAt := time.Now().UTC()
	s.publish(event.TypeCopyCompleted, map[string]any{
		"batch_id":  batchID,
		"attempted": outcome.Attempted,
		"succeeded": outcome.Succeeded,
		"failed":    len(outcome.PerItemErrors),
	})
	s.log.Info("copy batch finished",
		"batch_id", batchID,
		"attempted", outcome.Attempted,
		"succeeded", outcome.Succeeded,
		"failed", len(outcome.PerItemErrors))

	if outcome.Succeeded > 0 {
		s.files.Invalidate(dest)
	}

	s.recordBatch(model.CopyBatch{
		BatchID:         batchID,
		SourceFolderID:  src,
		DestFolderID:    dest,
		Attempted:       outcome.Attempted,
		Succeeded:       outcome.Succeeded,
		Failed:          len(outcome.PerItemErrors),
		UnresolvedNames: unresolved,
		CreatedAt:       createdAt,
		FinishedAt:      finishedAt,
	}, items)

	return model.CopyResponse{BatchID: batchID, Outcome: outcome, Unresolved: unresolved}, nil
}

// ListBatches returns recent batches from history, newest first.
func (s *CopyService) ListBatches(ctx context.Context, limit int) ([]model.CopyBatch, error) {
	if s.history == nil {
		return nil, model.ErrHistoryDisabled
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.history.ListBatches(ctx, limit)
}

// GetBatch returns one batch and its per-item results.
func (s *CopyService) GetBatch(ctx context.Context, batchID string) (model.CopyBatch, []model.CopyItemResult, error) {
	if s.history == nil {
		return model.CopyBatch{}, nil, model.ErrHistoryDisabled
	}
	batch, err := s.history.FindBatch(ctx, batchID)
	if err != nil {
		return model.CopyBatch{}, nil, err
	}
	items, err := s.history.FindItems(ctx, batchID)
	if err != nil {
		return model.CopyBatch{}, nil, err
	}
	return batch, items, nil
}

// recordBatch persists on a detached context so an aborted request still
// leaves a history row.
func (s *CopyService) recordBatch(batch model.CopyBatch, items []model.CopyItemResult) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.history.SaveBatch(ctx, batch); err != nil {
		s.log.Error("failed to persist copy batch", "batch_id", batch.BatchID, "error", err)
		return
	}
	if err := s.history.SaveItems(ctx, batch.BatchID, items); err != nil {
		s.log.Error("failed to persist copy items", "batch_id", batch.BatchID, "error", err)
	}
}

func (s *CopyService) publish(eventType event.Type, payload map[string]any) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
