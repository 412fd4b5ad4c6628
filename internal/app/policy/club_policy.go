package policy

import (
	"context"

	"github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/services"
)

// ClubPolicy guards club administration and the dashboards
type ClubPolicy struct {
	authz      *auth.AuthorizationService
	clubs      services.ClubService
	activity   services.ActivityService
	dashboards services.DashboardService
}

// NewClubPolicy creates a new ClubPolicy
func NewClubPolicy(
	authz *auth.AuthorizationService,
	clubs services.ClubService,
	activity services.ActivityService,
	dashboards services.DashboardService,
) *ClubPolicy {
	return &ClubPolicy{
		authz:      authz,
		clubs:      clubs,
		activity:   activity,
		dashboards: dashboards,
	}
}

// CreateClub lets an admin open a new club they will own
func (p *ClubPolicy) CreateClub(ctx context.Context, caller *models.Caller, cmd models.CreateClubCommand) (*models.Club, error) {
	if err := p.authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return p.clubs.CreateClub(ctx, caller.UserID, cmd)
}

func (p *ClubPolicy) UpdateClub(ctx context.Context, caller *models.Caller, clubID string, update models.ClubUpdate) (*models.Club, error) {
	if _, err := p.authz.ValidateClubOwnership(ctx, caller, clubID); err != nil {
		return nil, err
	}
	return p.clubs.UpdateClub(ctx, clubID, update)
}

func (p *ClubPolicy) DeleteClub(ctx context.Context, caller *models.Caller, clubID string) error {
	if _, err := p.authz.ValidateClubOwnership(ctx, caller, clubID); err != nil {
		return err
	}
	return p.clubs.DeleteClub(ctx, clubID)
}

func (p *ClubPolicy) CreateEvent(ctx context.Context, caller *models.Caller, clubID string, cmd models.CreateEventCommand) (*models.Event, error) {
	if _, err := p.authz.ValidateClubOwnership(ctx, caller, clubID); err != nil {
		return nil, err
	}
	return p.activity.CreateEvent(ctx, clubID, cmd)
}

func (p *ClubPolicy) CreateAnnouncement(ctx context.Context, caller *models.Caller, clubID, content string) (*models.Announcement, error) {
	if _, err := p.authz.ValidateClubOwnership(ctx, caller, clubID); err != nil {
		return nil, err
	}
	return p.activity.CreateAnnouncement(ctx, clubID, caller.UserID, content)
}

// AdminDashboard summarises the caller's clubs
func (p *ClubPolicy) AdminDashboard(ctx context.Context, caller *models.Caller) (*dto.AdminDashboardResponse, error) {
	if err := p.authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return p.dashboards.AdminDashboard(ctx, caller.UserID)
}

// StudentDashboard shows the caller's joined clubs and open requests
func (p *ClubPolicy) StudentDashboard(ctx context.Context, caller *models.Caller) (*dto.StudentDashboardResponse, error) {
	if err := p.authz.RequireStudent(caller); err != nil {
		return nil, err
	}
	return p.dashboards.StudentDashboard(ctx, caller.UserID)
}
