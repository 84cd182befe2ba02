package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"socialdesk/internal/models"
)

type PostingHistoryRepository interface {
	Create(ctx context.Context, ph *models.PostingHistory) (int64, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.PostingHistory, error)
}

type postingHistoryRepository struct {
	db *sql.DB
}

func NewPostingHistoryRepository(db *sql.DB) PostingHistoryRepository {
	return &postingHistoryRepository{db: db}
}

func (r *postingHistoryRepository) Create(ctx context.Context, ph *models.PostingHistory) (int64, error) {
	query := `
		INSERT INTO posting_history (post_id, account_id, platform, outcome, error_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var accountID sql.NullInt64
	if ph.AccountID != nil {
		accountID = sql.NullInt64{Int64: *ph.AccountID, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query, ph.PostID, accountID, ph.Platform, ph.Outcome, ph.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postingHistoryRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.PostingHistory, error) {
	query := `SELECT id, post_id, account_id, platform, outcome, error_message, created_at
		FROM posting_history WHERE post_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.PostingHistory
	for rows.Next() {
		var ph models.PostingHistory
		var accountID sql.NullInt64
		err := rows.Scan(&ph.ID, &ph.PostID, &accountID, &ph.Platform, &ph.Outcome, &ph.ErrorMessage, &ph.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		if accountID.Valid {
			ph.AccountID = &accountID.Int64
		}
		entries = append(entries, &ph)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return entries, nil
}
