package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {

	query :=
		`INSERT INTO todos (title, completed, timestamp, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Completed, todo.Timestamp, todo.OwnerID).Scan(&todo.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	query :=
		`SELECT id, title, completed, timestamp, owner_id FROM todos
		 WHERE id = $1
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.Timestamp, &todo.OwnerID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// ListByOwner returns every todo owned by ownerID. No ordering is imposed;
// rows come back in whatever order the store yields them.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Todo, error) {
	query :=
		`SELECT id, title, completed, timestamp, owner_id FROM todos
		 WHERE owner_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Todo, 0)
	for rows.Next() {
		todo := &models.Todo{}
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.Timestamp, &todo.OwnerID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) error {
	query :=
		`UPDATE todos SET title = $1, completed = $2, timestamp = $3
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, todo.Title, todo.Completed, todo.Timestamp, todo.ID)
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

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
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
		`DELETE FROM todos
		 WHERE owner_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
