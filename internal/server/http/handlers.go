package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dpetrovs/todomood/internal/common"
	"github.com/dpetrovs/todomood/internal/server/models"
	"github.com/dpetrovs/todomood/internal/server/services"
)

// Response shapes. These are the compatibility contract of the API; the
// storage schema behind them is not.

type userOut struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type tokenOut struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type todoOut struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Timestamp string `json:"timestamp"`
}

type moodOut struct {
	ID   int64  `json:"id"`
	Mood string `json:"mood"`
	Date string `json:"date"`
}

func newTodoOut(t *models.Todo) todoOut {
	return todoOut{ID: t.ID, Title: t.Title, Completed: t.Completed, Timestamp: t.Timestamp}
}

func newMoodOut(m *models.Mood) moodOut {
	return moodOut{ID: m.ID, Mood: m.Mood, Date: m.Date.Format(time.DateOnly)}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

type registerIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid payload"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userOut{ID: user.ID, Email: user.Email})
}

// login takes OAuth2-style form fields: username carries the email.
func (s *Server) login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")

	token, err := s.users.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Bad credentials"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenOut{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, userOut{ID: user.ID, Email: user.Email})
}

func (s *Server) listTodos(c *gin.Context) {
	user := currentUser(c)

	list, err := s.todos.List(c.Request.Context(), user.ID)
	if err != nil {
		s.internalError(c, err)
		return
	}

	out := make([]todoOut, 0, len(list))
	for _, t := range list {
		out = append(out, newTodoOut(t))
	}
	c.JSON(http.StatusOK, out)
}

type todoCreateIn struct {
	Title     string `json:"title" binding:"required"`
	Completed bool   `json:"completed"`
	Timestamp string `json:"timestamp" binding:"required"`
}

func (s *Server) createTodo(c *gin.Context) {
	user := currentUser(c)

	var in todoCreateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid payload"})
		return
	}

	todo, err := s.todos.Create(c.Request.Context(), user.ID, in.Title, in.Completed, in.Timestamp)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTodoOut(todo))
}

type todoUpdateIn struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Timestamp *string `json:"timestamp"`
}

func (s *Server) updateTodo(c *gin.Context) {
	user := currentUser(c)

	todoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid todo id"})
		return
	}

	var in todoUpdateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid payload"})
		return
	}

	patch := services.TodoPatch{Title: in.Title, Completed: in.Completed, Timestamp: in.Timestamp}

	todo, err := s.todos.Update(c.Request.Context(), user.ID, todoID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Todo not found"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTodoOut(todo))
}

func (s *Server) deleteTodo(c *gin.Context) {
	user := currentUser(c)

	todoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid todo id"})
		return
	}

	if err := s.todos.Delete(c.Request.Context(), user.ID, todoID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Todo not found"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) listMoodOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.moods.Options())
}

func (s *Server) getTodayMood(c *gin.Context) {
	user := currentUser(c)

	mood, err := s.moods.GetToday(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// absence is a valid answer, not a 404
			c.JSON(http.StatusOK, nil)
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMoodOut(mood))
}

type moodIn struct {
	Mood string `json:"mood" binding:"required"`
}

func (s *Server) setTodayMood(c *gin.Context) {
	user := currentUser(c)

	var in moodIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid payload"})
		return
	}

	if !models.ValidMoodLabel(in.Mood) {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "mood must be one of: " + strings.Join(models.MoodLabels, ", "),
		})
		return
	}

	mood, err := s.moods.SetToday(c.Request.Context(), user.ID, in.Mood)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMoodOut(mood))
}

func (s *Server) getMoodByDate(c *gin.Context) {
	user := currentUser(c)

	date, err := time.Parse(time.DateOnly, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	mood, err := s.moods.GetByDate(c.Request.Context(), user.ID, date)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMoodOut(mood))
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
