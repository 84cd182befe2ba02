package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"socialdesk/internal/models"
)

// AuditLogRepository is insert-and-read only. There is deliberately no
// update or delete.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) (int64, error)
	List(ctx context.Context, limit int) ([]*models.AuditLog, error)
}

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) (int64, error) {
	query := `
		INSERT INTO audit_logs (user_id, action, details, ip_address, resource)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	var userID sql.NullInt64
	if entry.UserID != nil {
		userID = sql.NullInt64{Int64: *entry.UserID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		userID,
		entry.Action,
		[]byte(entry.Details),
		entry.IPAddress,
		entry.Resource,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *auditLogRepository) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	query := `SELECT id, user_id, action, details, ip_address, resource, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		var userID sql.NullInt64
		err := rows.Scan(&e.ID, &userID, &e.Action, &e.Details, &e.IPAddress, &e.Resource, &e.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		if userID.Valid {
			e.UserID = &userID.Int64
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return entries, nil
}
