package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"socialdesk/internal/models"
)

type SocialAccountRepository interface {
	Create(ctx context.Context, sa *models.SocialAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SocialAccount, error)
	FindByClient(ctx context.Context, clientID int64, platform string) (*models.SocialAccount, error)
	ListInfoByClient(ctx context.Context, clientID int64) ([]*models.SocialAccount, error)
	Exists(ctx context.Context, clientID int64, platform string) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type socialAccountRepository struct {
	db *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

func (r *socialAccountRepository) Create(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	query := `
		INSERT INTO social_accounts (client_id, platform, platform_id, access_token, profile_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		sa.ClientID,
		sa.Platform,
		sa.PlatformID,
		sa.AccessToken,
		sa.ProfileName,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *socialAccountRepository) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	query := `SELECT id, client_id, platform, platform_id, access_token, profile_name, created_at, updated_at
		FROM social_accounts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var sa models.SocialAccount
	err := row.Scan(&sa.ID, &sa.ClientID, &sa.Platform, &sa.PlatformID,
		&sa.AccessToken, &sa.ProfileName, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &sa, nil
}

// FindByClient returns the account consulted for fan-out. Ordering by
// created_at makes "first match wins" deterministic when duplicates
// exist.
func (r *socialAccountRepository) FindByClient(ctx context.Context, clientID int64, platform string) (*models.SocialAccount, error) {
	query := `SELECT id, client_id, platform, platform_id, access_token, profile_name, created_at, updated_at
		FROM social_accounts
		WHERE client_id = $1 AND platform = $2
		ORDER BY created_at, id
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, clientID, platform)

	var sa models.SocialAccount
	err := row.Scan(&sa.ID, &sa.ClientID, &sa.Platform, &sa.PlatformID,
		&sa.AccessToken, &sa.ProfileName, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &sa, nil
}

// ListInfoByClient deliberately leaves access_token out of the select.
func (r *socialAccountRepository) ListInfoByClient(ctx context.Context, clientID int64) ([]*models.SocialAccount, error) {
	query := `SELECT id, client_id, platform, platform_id, profile_name, created_at
		FROM social_accounts`
	args := []interface{}{}

	if clientID != 0 {
		query += ` WHERE client_id = $1`
		args = append(args, clientID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.SocialAccount
	for rows.Next() {
		var sa models.SocialAccount
		err := rows.Scan(&sa.ID, &sa.ClientID, &sa.Platform, &sa.PlatformID, &sa.ProfileName, &sa.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &sa)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return accounts, nil
}

func (r *socialAccountRepository) Exists(ctx context.Context, clientID int64, platform string) (bool, error) {
	query := `SELECT 1 FROM social_accounts WHERE client_id = $1 AND platform = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, clientID, platform).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *socialAccountRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM social_accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
