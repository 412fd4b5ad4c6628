package dto

import (
	"github.com/yigit/clubhub/internal/app/models"
)

// DecideRequest is an admin's verdict on a pending request
type DecideRequest struct {
	Action string `json:"action" binding:"required"`
}

// MembershipListQuery holds the query parameters of a membership listing
type MembershipListQuery struct {
	ClubID string `form:"clubId" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty"`
}

// MembershipListResponse lists memberships with their per-status counts
type MembershipListResponse struct {
	Memberships []models.MembershipEntry `json:"memberships"`
	Counts      models.MembershipCounts  `json:"counts"`
}

// ClubSummary is a club together with its membership counts
type ClubSummary struct {
	Club           *models.Club            `json:"club"`
	Counts         models.MembershipCounts `json:"counts"`
	UpcomingEvents []*models.Event         `json:"upcomingEvents"`
	Announcements  []*models.Announcement  `json:"announcements"`
}

// AdminDashboardResponse aggregates every club an admin owns
type AdminDashboardResponse struct {
	Clubs  []ClubSummary           `json:"clubs"`
	Totals models.MembershipCounts `json:"totals"`
}

// StudentDashboardResponse aggregates a student's memberships
type StudentDashboardResponse struct {
	JoinedClubs     []*models.Club         `json:"joinedClubs"`
	PendingRequests []*models.Club         `json:"pendingRequests"`
	TotalJoined     int                    `json:"totalJoined"`
	TotalPending    int                    `json:"totalPending"`
	Announcements   []*models.Announcement `json:"announcements"`
}
