package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"socialdesk/internal/models"
)

type ClientAccessRepository interface {
	Upsert(ctx context.Context, ca *models.ClientAccess) error
	Get(ctx context.Context, userID, clientID int64) (*models.ClientAccess, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.ClientAccess, error)
}

type clientAccessRepository struct {
	db *sql.DB
}

func NewClientAccessRepository(db *sql.DB) ClientAccessRepository {
	return &clientAccessRepository{db: db}
}

// Upsert re-grants in place; (user_id, client_id) is unique so a second
// grant can only overwrite the level, never duplicate the row.
func (r *clientAccessRepository) Upsert(ctx context.Context, ca *models.ClientAccess) error {
	query := `
		INSERT INTO client_access (user_id, client_id, permission_level)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, client_id)
		DO UPDATE SET permission_level = EXCLUDED.permission_level, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, ca.UserID, ca.ClientID, ca.PermissionLevel)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *clientAccessRepository) Get(ctx context.Context, userID, clientID int64) (*models.ClientAccess, error) {
	query := `SELECT user_id, client_id, permission_level, created_at, updated_at
		FROM client_access WHERE user_id = $1 AND client_id = $2`
	row := r.db.QueryRowContext(ctx, query, userID, clientID)

	var ca models.ClientAccess
	err := row.Scan(&ca.UserID, &ca.ClientID, &ca.PermissionLevel, &ca.CreatedAt, &ca.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &ca, nil
}

func (r *clientAccessRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ClientAccess, error) {
	query := `SELECT user_id, client_id, permission_level, created_at, updated_at
		FROM client_access WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var grants []*models.ClientAccess
	for rows.Next() {
		var ca models.ClientAccess
		err := rows.Scan(&ca.UserID, &ca.ClientID, &ca.PermissionLevel, &ca.CreatedAt, &ca.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		grants = append(grants, &ca)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return grants, nil
}
