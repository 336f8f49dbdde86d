package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dpetrovs/todomood/internal/common"
	"github.com/dpetrovs/todomood/internal/dbx"
	"github.com/dpetrovs/todomood/internal/server/models"
	"github.com/dpetrovs/todomood/internal/server/repositories/moods"
	"github.com/dpetrovs/todomood/internal/server/repositories/todos"
	"github.com/dpetrovs/todomood/internal/server/repositories/users"
)

// In-memory repositories backing the service tests. They ignore the DBTX
// they are vended for, so transactional paths only need sqlmock for the
// begin/commit bookkeeping.

type memUsersRepo struct {
	rows   map[int64]*models.User
	nextID int64
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{rows: map[int64]*models.User{}}
}

func (r *memUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.rows[user.ID] = &cp
	return user, nil
}

func (r *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsersRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

type memTodosRepo struct {
	rows   map[int64]*models.Todo
	nextID int64
}

func newMemTodosRepo() *memTodosRepo {
	return &memTodosRepo{rows: map[int64]*models.Todo{}}
}

func (r *memTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.nextID++
	todo.ID = r.nextID
	cp := *todo
	r.rows[todo.ID] = &cp
	return todo, nil
}

func (r *memTodosRepo) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTodosRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Todo, error) {
	result := make([]*models.Todo, 0)
	for _, t := range r.rows {
		if t.OwnerID == ownerID {
			cp := *t
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *memTodosRepo) Update(ctx context.Context, todo *models.Todo) error {
	if _, ok := r.rows[todo.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *todo
	r.rows[todo.ID] = &cp
	return nil
}

func (r *memTodosRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memTodosRepo) DeleteAllByOwner(ctx context.Context, ownerID int64) error {
	for id, t := range r.rows {
		if t.OwnerID == ownerID {
			delete(r.rows, id)
		}
	}
	return nil
}

type memMoodsRepo struct {
	rows   map[int64]*models.Mood
	nextID int64
}

func newMemMoodsRepo() *memMoodsRepo {
	return &memMoodsRepo{rows: map[int64]*models.Mood{}}
}

func (r *memMoodsRepo) Create(ctx context.Context, mood *models.Mood) (*models.Mood, error) {
	r.nextID++
	mood.ID = r.nextID
	cp := *mood
	r.rows[mood.ID] = &cp
	return mood, nil
}

func (r *memMoodsRepo) GetByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) (*models.Mood, error) {
	for _, m := range r.rows {
		if m.OwnerID == ownerID && m.Date.Equal(date) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memMoodsRepo) UpdateValue(ctx context.Context, id int64, mood string) error {
	m, ok := r.rows[id]
	if !ok {
		return common.ErrorNotFound
	}
	m.Mood = mood
	return nil
}

func (r *memMoodsRepo) DeleteAllByOwner(ctx context.Context, ownerID int64) error {
	for id, m := range r.rows {
		if m.OwnerID == ownerID {
			delete(r.rows, id)
		}
	}
	return nil
}

// countByOwnerAndDate reports how many rows exist for one (owner, date)
// pair. The upsert contract is that sequential writes leave exactly one.
func (r *memMoodsRepo) countByOwnerAndDate(ownerID int64, date time.Time) int {
	n := 0
	for _, m := range r.rows {
		if m.OwnerID == ownerID && m.Date.Equal(date) {
			n++
		}
	}
	return n
}

type fakeManager struct {
	users *memUsersRepo
	todos *memTodosRepo
	moods *memMoodsRepo
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		users: newMemUsersRepo(),
		todos: newMemTodosRepo(),
		moods: newMemMoodsRepo(),
	}
}

func (f *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (f *fakeManager) Users(db dbx.DBTX) users.Repository                  { return f.users }
func (f *fakeManager) Todos(db dbx.DBTX) todos.Repository                  { return f.todos }
func (f *fakeManager) Moods(db dbx.DBTX) moods.Repository                  { return f.moods }

// newTxDB returns a sqlmock database that accepts any number of
// begin/commit pairs, for exercising code paths that run inside dbx.WithTx.
func newTxDB(t *testing.T, txCount int) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	for i := 0; i < txCount; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
