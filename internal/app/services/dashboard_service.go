package services

import (
	"context"
	"time"

	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

// DashboardService builds the read-only aggregate views of the two roles
type DashboardService interface {
	AdminDashboard(ctx context.Context, adminID string) (*dto.AdminDashboardResponse, error)
	StudentDashboard(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, error)
}

type dashboardServiceImpl struct {
	clubRepo     repositories.ClubRepository
	activityRepo repositories.ActivityRepository
	memberships  MembershipService
	now          func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	clubRepo repositories.ClubRepository,
	activityRepo repositories.ActivityRepository,
	memberships MembershipService,
) DashboardService {
	return &dashboardServiceImpl{
		clubRepo:     clubRepo,
		activityRepo: activityRepo,
		memberships:  memberships,
		now:          helpers.NowUTC,
	}
}

func clubIDs(clubs []*models.Club) []string {
	ids := make([]string, 0, len(clubs))
	for _, c := range clubs {
		ids = append(ids, c.ID)
	}
	return ids
}

// AdminDashboard summarises every club the admin owns. Owning nothing is not an error.
func (s *dashboardServiceImpl) AdminDashboard(ctx context.Context, adminID string) (*dto.AdminDashboardResponse, error) {
	clubs, err := s.clubRepo.FindClubsByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	ids := clubIDs(clubs)
	events, err := s.activityRepo.ListEvents(ctx, ids)
	if err != nil {
		return nil, err
	}
	announcements, err := s.activityRepo.ListAnnouncements(ctx, ids)
	if err != nil {
		return nil, err
	}

	today := s.now().Truncate(24 * time.Hour)
	upcoming := make(map[string][]*models.Event, len(clubs))
	for _, e := range events {
		if !e.Date.Before(today) {
			upcoming[e.Club] = append(upcoming[e.Club], e)
		}
	}
	byClub := make(map[string][]*models.Announcement, len(clubs))
	for _, a := range announcements {
		byClub[a.Club] = append(byClub[a.Club], a)
	}

	resp := &dto.AdminDashboardResponse{Clubs: make([]dto.ClubSummary, 0, len(clubs))}
	for _, c := range clubs {
		resp.Clubs = append(resp.Clubs, dto.ClubSummary{
			Club:           c,
			Counts:         c.Counts(),
			UpcomingEvents: nonNil(upcoming[c.ID]),
			Announcements:  nonNil(byClub[c.ID]),
		})
	}

	seq, err := s.memberships.ListByStatus(ctx, models.MembershipScope{AdminID: adminID}, "")
	if err != nil {
		return nil, err
	}
	resp.Totals = Summarize(seq)

	return resp, nil
}

// StudentDashboard lists the student's joined clubs and open requests
func (s *dashboardServiceImpl) StudentDashboard(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, error) {
	joined, err := s.clubRepo.FindClubsByStudentStatus(ctx, studentID, models.StatusApproved)
	if err != nil {
		return nil, err
	}
	pending, err := s.clubRepo.FindClubsByStudentStatus(ctx, studentID, models.StatusPending)
	if err != nil {
		return nil, err
	}

	announcements, err := s.activityRepo.ListAnnouncements(ctx, clubIDs(joined))
	if err != nil {
		return nil, err
	}

	return &dto.StudentDashboardResponse{
		JoinedClubs:     joined,
		PendingRequests: pending,
		TotalJoined:     len(joined),
		TotalPending:    len(pending),
		Announcements:   announcements,
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
