package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/clubhub/internal/app/models"
	appRepos "github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/auth"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

// Demo accounts
const (
	AdminEmail    = "admin@clubhub.app"
	AdminPassword = "Admin12345"

	StudentEmail    = "student@clubhub.app"
	StudentPassword = "Student12345"
)

// ensureUser returns the existing account for email or creates it
func ensureUser(ctx context.Context, users appRepos.UserRepository, name, email, password string, role appModels.RoleType) (*appModels.User, bool, error) {
	existing, err := users.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, false, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	now := helpers.NowUTC()
	user := &appModels.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  hashed,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// CreateDefaultData creates a demo admin, a demo student and the admin's
// "Chess Club" if they don't exist.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")

	admin, created, err := ensureUser(ctx, repos.Users, "Club Admin", AdminEmail, AdminPassword, appModels.RoleAdmin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}
	if !created {
		lgr.Info().Msg("Admin user already exists, skipping seed")
		return nil
	}
	lgr.Info().Str("adminID", admin.ID).Msg("Default admin user created successfully")

	var finalErr error
	if _, _, err := ensureUser(ctx, repos.Users, "Demo Student", StudentEmail, StudentPassword, appModels.RoleStudent); err != nil {
		lgr.Error().Err(err).Msg("Error creating student user")
		finalErr = errors.Join(finalErr, err)
	}

	now := helpers.NowUTC()
	club := &appModels.Club{
		ID:          uuid.New().String(),
		Name:        "Chess Club",
		Description: "Weekly games, puzzles and tournaments for every level.",
		Category:    "Games",
		Admin:       admin.ID,
		Members:     []appModels.Membership{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repos.Clubs.CreateClub(ctx, club); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo club")
		return errors.Join(finalErr, err)
	}

	event := &appModels.Event{
		ID:          uuid.New().String(),
		Club:        club.ID,
		Title:       "Open Blitz Night",
		Description: "Five minute games, boards provided.",
		Date:        now.Add(7 * 24 * time.Hour).Truncate(24 * time.Hour),
		Time:        "18:00",
		Venue:       "Student Center, Room 2",
		CreatedAt:   now,
	}
	if err := repos.Activity.CreateEvent(ctx, event); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo event")
		finalErr = errors.Join(finalErr, err)
	}

	announcement := &appModels.Announcement{
		ID:        uuid.New().String(),
		Club:      club.ID,
		Content:   "Welcome to the Chess Club! New members are always welcome.",
		CreatedBy: admin.ID,
		CreatedAt: now,
	}
	if err := repos.Activity.CreateAnnouncement(ctx, announcement); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo announcement")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Str("clubID", club.ID).Msg("Default data check/creation finished.")
	return finalErr
}
