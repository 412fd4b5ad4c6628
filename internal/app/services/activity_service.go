package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/helpers"
	"github.com/yigit/clubhub/internal/pkg/normalize"
)

// ActivityService publishes club events and announcements
type ActivityService interface {
	CreateEvent(ctx context.Context, clubID string, cmd models.CreateEventCommand) (*models.Event, error)
	CreateAnnouncement(ctx context.Context, clubID, authorID, content string) (*models.Announcement, error)
}

type activityServiceImpl struct {
	clubRepo     repositories.ClubRepository
	activityRepo repositories.ActivityRepository
	logger       zerolog.Logger
	now          func() time.Time
}

// NewActivityService creates a new ActivityService
func NewActivityService(clubRepo repositories.ClubRepository, activityRepo repositories.ActivityRepository, logger zerolog.Logger) ActivityService {
	return &activityServiceImpl{
		clubRepo:     clubRepo,
		activityRepo: activityRepo,
		logger:       logger,
		now:          helpers.NowUTC,
	}
}

// CreateEvent schedules a new event for the club
func (s *activityServiceImpl) CreateEvent(ctx context.Context, clubID string, cmd models.CreateEventCommand) (*models.Event, error) {
	if _, err := s.clubRepo.GetClub(ctx, clubID); err != nil {
		return nil, err
	}

	title := normalize.Name(cmd.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title must contain text")
	}
	if cmd.Date.IsZero() {
		return nil, apperrors.NewValidationError("date is required")
	}

	event := &models.Event{
		ID:          uuid.New().String(),
		Club:        clubID,
		Title:       title,
		Description: normalize.PlainText(cmd.Description),
		Date:        cmd.Date.UTC().Truncate(time.Millisecond),
		Time:        normalize.Name(cmd.Time),
		Venue:       normalize.Name(cmd.Venue),
		CreatedAt:   s.now(),
	}

	if err := s.activityRepo.CreateEvent(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("clubID", clubID).Msg("Failed to create event")
		return nil, err
	}

	s.logger.Info().Str("clubID", clubID).Str("eventID", event.ID).Time("date", event.Date).Msg("Event created")
	return event, nil
}

// CreateAnnouncement posts a message to the club
func (s *activityServiceImpl) CreateAnnouncement(ctx context.Context, clubID, authorID, content string) (*models.Announcement, error) {
	if _, err := s.clubRepo.GetClub(ctx, clubID); err != nil {
		return nil, err
	}

	text := normalize.PlainText(content)
	if text == "" {
		return nil, apperrors.NewValidationError("content must contain text")
	}

	announcement := &models.Announcement{
		ID:        uuid.New().String(),
		Club:      clubID,
		Content:   text,
		CreatedBy: authorID,
		CreatedAt: s.now(),
	}

	if err := s.activityRepo.CreateAnnouncement(ctx, announcement); err != nil {
		s.logger.Error().Err(err).Str("clubID", clubID).Msg("Failed to create announcement")
		return nil, err
	}

	s.logger.Info().Str("clubID", clubID).Str("announcementID", announcement.ID).Msg("Announcement posted")
	return announcement, nil
}
