package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/helpers"
	"github.com/yigit/clubhub/internal/pkg/normalize"
)

// ClubService defines the interface for club catalogue operations
type ClubService interface {
	GetClub(ctx context.Context, clubID string) (*models.Club, error)
	CreateClub(ctx context.Context, adminID string, cmd models.CreateClubCommand) (*models.Club, error)
	UpdateClub(ctx context.Context, clubID string, update models.ClubUpdate) (*models.Club, error)
	DeleteClub(ctx context.Context, clubID string) error
	// Explore lists clubs for a viewer; viewerID may be empty.
	Explore(ctx context.Context, viewerID string, filter models.ClubFilter) (*dto.ExploreResponse, error)
	Details(ctx context.Context, viewerID, clubID string) (*dto.ClubDetailsResponse, error)
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	clubRepo     repositories.ClubRepository
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityRepository
	logger       zerolog.Logger
	now          func() time.Time
}

// NewClubService creates a new ClubService
func NewClubService(
	clubRepo repositories.ClubRepository,
	userRepo repositories.UserRepository,
	activityRepo repositories.ActivityRepository,
	logger zerolog.Logger,
) ClubService {
	return &clubServiceImpl{
		clubRepo:     clubRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		logger:       logger,
		now:          helpers.NowUTC,
	}
}

// GetClub retrieves one club
func (s *clubServiceImpl) GetClub(ctx context.Context, clubID string) (*models.Club, error) {
	return s.clubRepo.GetClub(ctx, clubID)
}

// CreateClub stores a new club owned by the admin
func (s *clubServiceImpl) CreateClub(ctx context.Context, adminID string, cmd models.CreateClubCommand) (*models.Club, error) {
	name := normalize.Name(cmd.Name)
	description := normalize.PlainText(cmd.Description)
	category := normalize.Category(cmd.Category)
	if name == "" || description == "" || category == "" {
		return nil, apperrors.NewValidationError("name, description and category must contain text")
	}
	if category == "All" {
		return nil, apperrors.NewValidationError("category 'all' is reserved")
	}

	now := s.now()
	club := &models.Club{
		ID:          uuid.New().String(),
		Name:        name,
		Logo:        normalize.PlainText(cmd.Logo),
		Description: description,
		Category:    category,
		Admin:       adminID,
		Members:     []models.Membership{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.clubRepo.CreateClub(ctx, club); err != nil {
		s.logger.Error().Err(err).Str("adminID", adminID).Msg("Failed to create club")
		return nil, err
	}

	s.logger.Info().
		Str("clubID", club.ID).
		Str("adminID", adminID).
		Str("category", club.Category).
		Msg("Club created")

	return club, nil
}

// UpdateClub applies a sanitised partial update
func (s *clubServiceImpl) UpdateClub(ctx context.Context, clubID string, update models.ClubUpdate) (*models.Club, error) {
	clean := models.ClubUpdate{}
	if update.Name != nil {
		v := normalize.Name(*update.Name)
		if v == "" {
			return nil, apperrors.NewValidationError("name must contain text")
		}
		clean.Name = &v
	}
	if update.Description != nil {
		v := normalize.PlainText(*update.Description)
		if v == "" {
			return nil, apperrors.NewValidationError("description must contain text")
		}
		clean.Description = &v
	}
	if update.Category != nil {
		v := normalize.Category(*update.Category)
		if v == "" || v == "All" {
			return nil, apperrors.NewValidationError("category must be a real category")
		}
		clean.Category = &v
	}
	if update.Logo != nil {
		v := normalize.PlainText(*update.Logo)
		clean.Logo = &v
	}

	club, err := s.clubRepo.UpdateClub(ctx, clubID, clean)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("clubID", clubID).Msg("Club updated")
	return club, nil
}

// DeleteClub removes a club with everything attached to it
func (s *clubServiceImpl) DeleteClub(ctx context.Context, clubID string) error {
	if err := s.clubRepo.DeleteClub(ctx, clubID); err != nil {
		return err
	}
	s.logger.Info().Str("clubID", clubID).Msg("Club deleted")
	return nil
}

// Explore lists one page of clubs with the viewer's status in each
func (s *clubServiceImpl) Explore(ctx context.Context, viewerID string, filter models.ClubFilter) (*dto.ExploreResponse, error) {
	filter.Category = normalize.CategoryFilter(filter.Category)
	filter.Search = normalize.Name(filter.Search)
	_, filter.Limit = helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	if filter.Page < 1 {
		filter.Page = helpers.DefaultPage
	}

	s.logger.Debug().
		Str("category", filter.Category).
		Str("search", filter.Search).
		Int("page", filter.Page).
		Int("limit", filter.Limit).
		Msg("Exploring clubs")

	clubs, total, err := s.clubRepo.ListClubs(ctx, filter)
	if err != nil {
		return nil, err
	}

	adminIDs := make([]string, 0, len(clubs))
	for _, c := range clubs {
		adminIDs = append(adminIDs, c.Admin)
	}
	admins, err := s.userRepo.FindUsersByIDs(ctx, adminIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClubListItem, 0, len(clubs))
	for _, c := range clubs {
		item := dto.ClubListItem{
			ID:                   c.ID,
			Name:                 c.Name,
			Logo:                 c.Logo,
			Description:          c.Description,
			Category:             c.Category,
			MemberCount:          c.Counts().Approved,
			UserMembershipStatus: c.StatusOf(viewerID),
			CreatedAt:            c.CreatedAt,
		}
		if admin, ok := admins[c.Admin]; ok {
			summary := admin.Summary()
			item.Admin = &summary
		}
		items = append(items, item)
	}

	return &dto.ExploreResponse{
		Clubs:      items,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Limit),
	}, nil
}

// Details returns a club with its member lists and activity
func (s *clubServiceImpl) Details(ctx context.Context, viewerID, clubID string) (*dto.ClubDetailsResponse, error) {
	club, err := s.clubRepo.GetClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(club.Members)+1)
	userIDs = append(userIDs, club.Admin)
	for _, m := range club.Members {
		userIDs = append(userIDs, m.Student)
	}
	users, err := s.userRepo.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	events, err := s.activityRepo.ListEvents(ctx, []string{club.ID})
	if err != nil {
		return nil, err
	}
	announcements, err := s.activityRepo.ListAnnouncements(ctx, []string{club.ID})
	if err != nil {
		return nil, err
	}

	resp := &dto.ClubDetailsResponse{
		Club:                 club,
		ApprovedMembers:      memberViews(club.MembersWithStatus(models.StatusApproved), users),
		PendingMembers:       memberViews(club.MembersWithStatus(models.StatusPending), users),
		Events:               events,
		Announcements:        announcements,
		UserMembershipStatus: club.StatusOf(viewerID),
		Counts:               club.Counts(),
	}
	if admin, ok := users[club.Admin]; ok {
		summary := admin.Summary()
		resp.Admin = &summary
	}
	return resp, nil
}

func memberViews(members []models.Membership, users map[string]*models.User) []dto.MemberView {
	views := make([]dto.MemberView, 0, len(members))
	for _, m := range members {
		student := models.UserSummary{ID: m.Student}
		if u, ok := users[m.Student]; ok {
			student = u.Summary()
		}
		views = append(views, dto.MemberView{
			ID:       m.ID,
			Student:  student,
			Status:   m.Status,
			JoinedAt: m.JoinedAt,
		})
	}
	return views
}
