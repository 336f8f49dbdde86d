package moods

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dpetrovs/todomood/internal/common"
	"github.com/dpetrovs/todomood/internal/dbx"
	"github.com/dpetrovs/todomood/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, mood *models.Mood) (*models.Mood, error) {

	query :=
		`INSERT INTO moods (mood, date, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, mood.Mood, mood.Date, mood.OwnerID).Scan(&mood.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return mood, nil
}

func (r *PostgresRepository) GetByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) (*models.Mood, error) {
	query :=
		`SELECT id, mood, date, owner_id FROM moods
		 WHERE owner_id = $1 AND date = $2
		 `

	mood := &models.Mood{}
	err := r.db.QueryRowContext(ctx, query, ownerID, date).
		Scan(&mood.ID, &mood.Mood, &mood.Date, &mood.OwnerID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return mood, nil
}

func (r *PostgresRepository) UpdateValue(ctx context.Context, id int64, mood string) error {
	query :=
		`UPDATE moods SET mood = $1
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, mood, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteAllByOwner(ctx context.Context, ownerID int64) error {
	query :=
		`DELETE FROM moods
		 WHERE owner_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
