package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dpetrovs/todomood/internal/common"
	"github.com/dpetrovs/todomood/internal/server/models"
	"github.com/dpetrovs/todomood/internal/server/repositories/repomanager"
)

// TodoPatch carries the fields of a partial todo update. Only non-nil
// fields overwrite the stored values.
type TodoPatch struct {
	Title     *string
	Completed *bool
	Timestamp *string
}

type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

func (s *TodoService) List(ctx context.Context, ownerID int64) ([]*models.Todo, error) {

	result, err := s.repomanager.Todos(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}

	return result, nil
}

func (s *TodoService) Create(ctx context.Context, ownerID int64, title string, completed bool, timestamp string) (*models.Todo, error) {

	todo := &models.Todo{
		Title:     title,
		Completed: completed,
		Timestamp: timestamp,
		OwnerID:   ownerID,
	}

	todo, err := s.repomanager.Todos(s.db).Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}

	return todo, nil
}

// getOwned fetches a todo and checks ownership. A missing id and a todo
// owned by someone else are indistinguishable: both are ErrorNotFound, so
// callers cannot probe for the existence of other users' data.
func (s *TodoService) getOwned(ctx context.Context, ownerID int64, todoID int64) (*models.Todo, error) {

	todo, err := s.repomanager.Todos(s.db).GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if todo.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}

	return todo, nil
}

// Update applies a partial update to an owned todo. Fields absent from the
// patch keep their prior values.
func (s *TodoService) Update(ctx context.Context, ownerID int64, todoID int64, patch TodoPatch) (*models.Todo, error) {

	todo, err := s.getOwned(ctx, ownerID, todoID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	if patch.Timestamp != nil {
		todo.Timestamp = *patch.Timestamp
	}

	if err := s.repomanager.Todos(s.db).Update(ctx, todo); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID int64, todoID int64) error {

	todo, err := s.getOwned(ctx, ownerID, todoID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Todos(s.db).Delete(ctx, todo.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}
