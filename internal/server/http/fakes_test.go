package http

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dpetrovs/todomood/internal/common"
	"github.com/dpetrovs/todomood/internal/logging"
	"github.com/dpetrovs/todomood/internal/server/auth"
	"github.com/dpetrovs/todomood/internal/server/models"
	"github.com/dpetrovs/todomood/internal/server/services"
)

const testSecret = "test-secret"

// Fake providers backing the handler tests. They reproduce the service
// contracts (ownership checks, error sentinels) over in-memory state so the
// tests exercise routing, binding and status mapping in isolation.

type fakeUsers struct {
	rows      map[int64]*models.User
	passwords map[int64]string
	nextID    int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{rows: map[int64]*models.User{}, passwords: map[int64]string{}}
}

func (f *fakeUsers) Register(ctx context.Context, email string, password string) (*models.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	u := &models.User{ID: f.nextID, Email: email, PasswordHash: "hashed"}
	f.rows[u.ID] = u
	f.passwords[u.ID] = password
	return u, nil
}

func (f *fakeUsers) Login(ctx context.Context, email string, password string) (string, error) {
	for id, u := range f.rows {
		if u.Email == email && f.passwords[id] == password {
			return auth.GenerateToken(id, []byte(testSecret), time.Hour)
		}
	}
	return "", common.ErrorUnauthorized
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeTodos struct {
	rows   map[int64]*models.Todo
	nextID int64
}

func newFakeTodos() *fakeTodos {
	return &fakeTodos{rows: map[int64]*models.Todo{}}
}

func (f *fakeTodos) List(ctx context.Context, ownerID int64) ([]*models.Todo, error) {
	result := make([]*models.Todo, 0)
	for _, t := range f.rows {
		if t.OwnerID == ownerID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *fakeTodos) Create(ctx context.Context, ownerID int64, title string, completed bool, timestamp string) (*models.Todo, error) {
	f.nextID++
	t := &models.Todo{ID: f.nextID, Title: title, Completed: completed, Timestamp: timestamp, OwnerID: ownerID}
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTodos) Update(ctx context.Context, ownerID int64, todoID int64, patch services.TodoPatch) (*models.Todo, error) {
	t, ok := f.rows[todoID]
	if !ok || t.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Timestamp != nil {
		t.Timestamp = *patch.Timestamp
	}
	return t, nil
}

func (f *fakeTodos) Delete(ctx context.Context, ownerID int64, todoID int64) error {
	t, ok := f.rows[todoID]
	if !ok || t.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(f.rows, todoID)
	return nil
}

type fakeMoods struct {
	rows   map[int64]*models.Mood
	nextID int64
	today  time.Time
}

func newFakeMoods() *fakeMoods {
	return &fakeMoods{
		rows:  map[int64]*models.Mood{},
		today: time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeMoods) Options() []string {
	return models.MoodLabels
}

func (f *fakeMoods) GetToday(ctx context.Context, ownerID int64) (*models.Mood, error) {
	return f.GetByDate(ctx, ownerID, f.today)
}

func (f *fakeMoods) SetToday(ctx context.Context, ownerID int64, label string) (*models.Mood, error) {
	for _, m := range f.rows {
		if m.OwnerID == ownerID && m.Date.Equal(f.today) {
			m.Mood = label
			return m, nil
		}
	}
	f.nextID++
	m := &models.Mood{ID: f.nextID, Mood: label, Date: f.today, OwnerID: ownerID}
	f.rows[m.ID] = m
	return m, nil
}

func (f *fakeMoods) GetByDate(ctx context.Context, ownerID int64, date time.Time) (*models.Mood, error) {
	for _, m := range f.rows {
		if m.OwnerID == ownerID && m.Date.Equal(date) {
			return m, nil
		}
	}
	return nil, common.ErrorNotFound
}

type testEnv struct {
	server *Server
	users  *fakeUsers
	todos  *fakeTodos
	moods  *fakeMoods
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	env := &testEnv{
		users: newFakeUsers(),
		todos: newFakeTodos(),
		moods: newFakeMoods(),
	}
	env.server = NewServer(":0", logger, env.users, env.todos, env.moods, testSecret)
	return env
}

// registerAndLogin seeds one user and returns a valid bearer token.
func (e *testEnv) registerAndLogin(t *testing.T, email string, password string) string {
	t.Helper()

	if _, err := e.users.Register(context.Background(), email, password); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	token, err := e.users.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	return token
}
