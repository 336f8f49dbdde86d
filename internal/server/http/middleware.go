package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dpetrovs/todomood/internal/common"
	"github.com/dpetrovs/todomood/internal/server/auth"
	"github.com/dpetrovs/todomood/internal/server/models"
)

const currentUserKey = "currentUser"

// tokenAuthMiddleware resolves the caller's identity on every protected
// request: extract the bearer token, verify it, and load the user it names.
// A missing header, a bad or expired token, and a user deleted after the
// token was issued are all the same 401 to the caller.
func (s *Server) tokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			s.unauthorized(c)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			s.unauthorized(c)
			return
		}

		user, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			s.unauthorized(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func (s *Server) unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
}

// currentUser returns the user resolved by tokenAuthMiddleware. Handlers
// behind the middleware can rely on it being present.
func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get(currentUserKey)
	user, _ := v.(*models.User)
	return user
}

// requestLogger tags every request with an id and logs method, path, status
// and duration on completion.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-Id", requestID)

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
