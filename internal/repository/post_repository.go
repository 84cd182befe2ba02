package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"socialdesk/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, clientID int64, status string) ([]*models.Post, error)
	ListRecentByClient(ctx context.Context, clientID int64, limit int) ([]*models.Post, error)
	ListDue(ctx context.Context, before time.Time) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post, fromStatus string) (bool, error)
	UpdateStatus(ctx context.Context, status string, postID int64) error
	Approve(ctx context.Context, postID, approverID int64, at time.Time) (bool, error)
	Reject(ctx context.Context, postID, rejecterID int64, reason string, at time.Time) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, client_id, creator_id, content, media_urls, media_type, platforms, status,
	scheduled_at, approved_by, approved_at, rejected_by, rejected_at, rejection_reason, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (client_id, creator_id, content, media_urls, media_type, platforms, status, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.ClientID,
		post.CreatorID,
		post.Content,
		pq.Array(post.MediaURLs),
		post.MediaType,
		pq.Array(post.Platforms),
		post.Status,
		nullTime(post.ScheduledAt),
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) List(ctx context.Context, clientID int64, status string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	args := []interface{}{}

	if clientID != 0 {
		args = append(args, clientID)
		query += ` AND client_id = $1`
	}
	if status != "" {
		args = append(args, status)
		if clientID != 0 {
			query += ` AND status = $2`
		} else {
			query += ` AND status = $1`
		}
	}
	query += ` ORDER BY created_at DESC`

	return r.queryPosts(ctx, query, args...)
}

func (r *postRepository) ListRecentByClient(ctx context.Context, clientID int64, limit int) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryPosts(ctx, query, clientID, limit)
}

func (r *postRepository) ListDue(ctx context.Context, before time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE status IN ($1, $2) AND scheduled_at IS NOT NULL AND scheduled_at <= $3`
	return r.queryPosts(ctx, query, models.PostStatusScheduled, models.PostStatusApproved, before)
}

// Update writes the patched row only while the post still holds
// fromStatus. Zero rows means another transition landed first.
func (r *postRepository) Update(ctx context.Context, post *models.Post, fromStatus string) (bool, error) {
	query := `
		UPDATE posts
		SET content = $1,
			media_urls = $2,
			media_type = $3,
			platforms = $4,
			status = $5,
			scheduled_at = $6,
			updated_at = $7
		WHERE id = $8 AND status = $9
	`
	result, err := r.db.ExecContext(ctx, query,
		post.Content,
		pq.Array(post.MediaURLs),
		post.MediaType,
		pq.Array(post.Platforms),
		post.Status,
		nullTime(post.ScheduledAt),
		time.Now(),
		post.ID,
		fromStatus,
	)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// Approve performs the PENDING_APPROVAL -> APPROVED transition. The
// status predicate in the WHERE clause is what serializes concurrent
// transitions; a false return means the post was not pending.
func (r *postRepository) Approve(ctx context.Context, postID, approverID int64, at time.Time) (bool, error) {
	query := `
		UPDATE posts
		SET status = $1,
			approved_by = $2,
			approved_at = $3,
			updated_at = $3
		WHERE id = $4 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		models.PostStatusApproved, approverID, at, postID, models.PostStatusPendingApproval)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	return affected == 1, nil
}

func (r *postRepository) Reject(ctx context.Context, postID, rejecterID int64, reason string, at time.Time) (bool, error) {
	query := `
		UPDATE posts
		SET status = $1,
			rejected_by = $2,
			rejected_at = $3,
			rejection_reason = $4,
			updated_at = $3
		WHERE id = $5 AND status = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		models.PostStatusRejected, rejecterID, at, reason, postID, models.PostStatusPendingApproval)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	return affected == 1, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return posts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var scheduledAt, approvedAt, rejectedAt sql.NullTime
	var approvedBy, rejectedBy sql.NullInt64
	var rejectionReason sql.NullString

	err := row.Scan(
		&post.ID,
		&post.ClientID,
		&post.CreatorID,
		&post.Content,
		pq.Array(&post.MediaURLs),
		&post.MediaType,
		pq.Array(&post.Platforms),
		&post.Status,
		&scheduledAt,
		&approvedBy,
		&approvedAt,
		&rejectedBy,
		&rejectedAt,
		&rejectionReason,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if scheduledAt.Valid {
		post.ScheduledAt = &scheduledAt.Time
	}
	if approvedBy.Valid {
		post.ApprovedBy = &approvedBy.Int64
	}
	if approvedAt.Valid {
		post.ApprovedAt = &approvedAt.Time
	}
	if rejectedBy.Valid {
		post.RejectedBy = &rejectedBy.Int64
	}
	if rejectedAt.Valid {
		post.RejectedAt = &rejectedAt.Time
	}
	post.RejectionReason = rejectionReason.String

	return &post, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
