package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"socialdesk/internal/models"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Remove(ctx context.Context, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) (int64, error) {
	query := `
		INSERT INTO clients (name, industry, timezone)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, client.Name, client.Industry, client.Timezone).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT id, name, industry, timezone, created_at, updated_at FROM clients WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Timezone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &c, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*models.Client, error) {
	query := `SELECT id, name, industry, timezone, created_at, updated_at FROM clients ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var c models.Client
		err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.Timezone, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		clients = append(clients, &c)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $1,
			industry = $2,
			timezone = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, client.Name, client.Industry, client.Timezone, time.Now(), client.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *clientRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
