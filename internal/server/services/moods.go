package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dpetrovs/todomood/internal/common"
	"github.com/dpetrovs/todomood/internal/dbx"
	"github.com/dpetrovs/todomood/internal/server/models"
	"github.com/dpetrovs/todomood/internal/server/repositories/repomanager"
)

type MoodService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	// now is a seam for tests; defaults to time.Now.
	now func() time.Time
}

func NewMoodService(db *sql.DB, m repomanager.RepositoryManager) *MoodService {
	return &MoodService{db: db, repomanager: m, now: time.Now}
}

// Options returns the fixed set of mood labels a client may submit.
func (s *MoodService) Options() []string {
	return models.MoodLabels
}

// DateOnly truncates t to calendar-date precision at midnight UTC, the form
// every mood row stores and every mood query uses.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *MoodService) today() time.Time {
	return DateOnly(s.now())
}

// GetToday returns the caller's mood row for the current calendar date,
// evaluated at call time. Absence surfaces as common.ErrorNotFound.
func (s *MoodService) GetToday(ctx context.Context, ownerID int64) (*models.Mood, error) {
	return s.GetByDate(ctx, ownerID, s.today())
}

// GetByDate returns the caller's mood row for an arbitrary date. Any past
// or future date is queryable.
func (s *MoodService) GetByDate(ctx context.Context, ownerID int64, date time.Time) (*models.Mood, error) {

	mood, err := s.repomanager.Moods(s.db).GetByOwnerAndDate(ctx, ownerID, DateOnly(date))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return mood, nil
}

// SetToday records the caller's mood for today: an existing row is updated
// in place, otherwise a new row is created. The read and the write run in
// one transaction for connection hygiene, but that does not serialize
// concurrent callers: two simultaneous first writes for the same day can
// both observe "absent" and insert twice. Known limitation of the
// read-then-write design.
//
// The label is validated at the request boundary before this call.
func (s *MoodService) SetToday(ctx context.Context, ownerID int64, label string) (*models.Mood, error) {

	today := s.today()

	var result *models.Mood

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Moods(tx)

		existing, err := repo.GetByOwnerAndDate(ctx, ownerID, today)
		if err == nil {
			if err := repo.UpdateValue(ctx, existing.ID, label); err != nil {
				return err
			}
			existing.Mood = label
			result = existing
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		created, err := repo.Create(ctx, &models.Mood{Mood: label, Date: today, OwnerID: ownerID})
		if err != nil {
			return err
		}
		result = created
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error setting mood: %w", err)
	}

	return result, nil
}
