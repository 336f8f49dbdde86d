// Package http exposes the todomood operations over a JSON REST surface.
// It owns routing, payload validation, bearer-token identity resolution,
// and the mapping from service errors to transport status codes.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dpetrovs/todomood/internal/logging"
	"github.com/dpetrovs/todomood/internal/server/models"
	"github.com/dpetrovs/todomood/internal/server/services"
)

// UserProvider is the slice of UserService the request layer needs.
type UserProvider interface {
	Register(ctx context.Context, email string, password string) (*models.User, error)
	Login(ctx context.Context, email string, password string) (string, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// TodoProvider is the slice of TodoService the request layer needs.
type TodoProvider interface {
	List(ctx context.Context, ownerID int64) ([]*models.Todo, error)
	Create(ctx context.Context, ownerID int64, title string, completed bool, timestamp string) (*models.Todo, error)
	Update(ctx context.Context, ownerID int64, todoID int64, patch services.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, ownerID int64, todoID int64) error
}

// MoodProvider is the slice of MoodService the request layer needs.
type MoodProvider interface {
	Options() []string
	GetToday(ctx context.Context, ownerID int64) (*models.Mood, error)
	SetToday(ctx context.Context, ownerID int64, label string) (*models.Mood, error)
	GetByDate(ctx context.Context, ownerID int64, date time.Time) (*models.Mood, error)
}

type Server struct {
	address   string
	router    *gin.Engine
	logger    logging.Logger
	users     UserProvider
	todos     TodoProvider
	moods     MoodProvider
	jwtSecret []byte
}

func NewServer(addr string, l logging.Logger, us UserProvider, ts TodoProvider, ms MoodProvider, secretKey string) *Server {
	s := &Server{
		address:   addr,
		logger:    l.With("module", "http_server"),
		users:     us,
		todos:     ts,
		moods:     ms,
		jwtSecret: []byte(secretKey),
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: false,
	}))

	s.router = router
	s.initRoutes()

	return s
}

func (s *Server) initRoutes() {
	s.router.GET("/", s.healthCheck)
	s.router.POST("/register", s.register)
	s.router.POST("/login", s.login)
	s.router.GET("/moods/options", s.listMoodOptions)

	authed := s.router.Group("/", s.tokenAuthMiddleware())
	authed.GET("/me", s.me)
	authed.GET("/todos", s.listTodos)
	authed.POST("/todos", s.createTodo)
	authed.PATCH("/todos/:id", s.updateTodo)
	authed.DELETE("/todos/:id", s.deleteTodo)
	authed.GET("/moods/today", s.getTodayMood)
	authed.POST("/moods/today", s.setTodayMood)
	authed.GET("/moods/:date", s.getMoodByDate)
}

// Handler returns the routing tree, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.router}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
