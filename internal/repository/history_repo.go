package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"drive-file-copy/internal/model"
)

// HistoryRepository stores copy batch outcomes in Postgres.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) SaveBatch(ctx context.Context, batch model.CopyBatch) error {
	query := `
		INSERT INTO copy_batches
			(batch_id, source_folder_id, dest_folder_id, attempted, succeeded, failed, unresolved_names, created_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		batch.BatchID,
		batch.SourceFolderID,
		batch.DestFolderID,
		batch.Attempted,
		batch.Succeeded,
		batch.Failed,
		batch.UnresolvedNames,
		batch.CreatedAt,
		batch.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save copy batch: %w", err)
	}

	return nil
}

func (r *HistoryRepository) SaveItems(ctx context.Context, batchID string, items []model.CopyItemResult) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO copy_items (batch_id, file_id, file_name, status, error)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range items {
		batch.Queue(query, batchID, item.FileID, item.FileName, item.Status, item.Error)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save copy items: %w", err)
		}
	}

	return nil
}

func (r *HistoryRepository) ListBatches(ctx context.Context, limit int) ([]model.CopyBatch, error) {
	query := `
		SELECT batch_id, source_folder_id, dest_folder_id, attempted, succeeded, failed, unresolved_names, created_at, finished_at
		FROM copy_batches
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list copy batches: %w", err)
	}
	defer rows.Close()

	batches := make([]model.CopyBatch, 0, limit)
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}

	return batches, rows.Err()
}

func (r *HistoryRepository) FindBatch(ctx context.Context, batchID string) (model.CopyBatch, error) {
	query := `
		SELECT batch_id, source_folder_id, dest_folder_id, attempted, succeeded, failed, unresolved_names, created_at, finished_at
		FROM copy_batches
		WHERE batch_id = $1`

	batch, err := scanBatch(r.pool.QueryRow(ctx, query, batchID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CopyBatch{}, model.ErrBatchNotFound
	}
	if err != nil {
		return model.CopyBatch{}, err
	}

	return batch, nil
}

func (r *HistoryRepository) FindItems(ctx context.Context, batchID string) ([]model.CopyItemResult, error) {
	query := `
		SELECT file_id, file_name, status, error
		FROM copy_items
		WHERE batch_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list copy items: %w", err)
	}
	defer rows.Close()

	var items []model.CopyItemResult
	for rows.Next() {
		var item model.CopyItemResult
		if err := rows.Scan(&item.FileID, &item.FileName, &item.Status, &item.Error); err != nil {
			return nil, fmt.Errorf("failed to scan copy item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanBatch(row pgx.Row) (model.CopyBatch, error) {
	var batch model.CopyBatch
	err := row.Scan(
		&batch.BatchID,
		&batch.SourceFolderID,
		&batch.DestFolderID,
		&batch.Attempted,
		&batch.Succeeded,
		&batch.Failed,
		&batch.UnresolvedNames,
		&batch.CreatedAt,
		&batch.FinishedAt,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return model.CopyBatch{}, fmt.Errorf("failed to scan copy batch: %w", err)
	}
	return batch, err
}
