// Package services implements the business operations of the todomood
// server on top of the repository layer. Services translate repository
// sentinels into the caller-facing error set and never leak which internal
// condition caused an authentication or ownership failure.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dpetrovs/todomood/internal/common"
	"github.com/dpetrovs/todomood/internal/dbx"
	"github.com/dpetrovs/todomood/internal/server/auth"
	"github.com/dpetrovs/todomood/internal/server/config"
	"github.com/dpetrovs/todomood/internal/server/models"
	"github.com/dpetrovs/todomood/internal/server/repositories/repomanager"
)

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a user with a freshly hashed password. The email match is
// exact and case-sensitive; a taken email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email string, password string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Email: email, PasswordHash: hash}

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and issues an access token carrying the user
// id as subject. Unknown email and wrong password are indistinguishable to
// the caller: both come back as common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email string, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// GetByID resolves a user by id. Used by the request layer to turn a
// verified token subject into a concrete user on every protected request.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {

	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Delete removes a user together with every todo and mood the user owns.
// Dependent rows go first so the foreign keys hold at each step, all inside
// one transaction.
func (s *UserService) Delete(ctx context.Context, userID int64) error {

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Todos(tx).DeleteAllByOwner(ctx, userID); err != nil {
			return err
		}
		if err := s.repomanager.Moods(tx).DeleteAllByOwner(ctx, userID); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
}
