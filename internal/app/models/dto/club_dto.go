package dto

import (
	"time"

	"github.com/yigit/clubhub/internal/app/models"
)

// CreateClubRequest represents the body of a club creation
type CreateClubRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Logo        string `json:"logo" binding:"omitempty,url"`
	Description string `json:"description" binding:"required,max=2000"`
	Category    string `json:"category" binding:"required,max=50"`
}

// ToCommand converts the request into a create command
func (r CreateClubRequest) ToCommand() models.CreateClubCommand {
	return models.CreateClubCommand{
		Name:        r.Name,
		Logo:        r.Logo,
		Description: r.Description,
		Category:    r.Category,
	}
}

// UpdateClubRequest represents a partial club update
type UpdateClubRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Logo        *string `json:"logo" binding:"omitempty,url"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Category    *string `json:"category" binding:"omitempty,min=1,max=50"`
}

// ToUpdate converts the request into a club update
func (r UpdateClubRequest) ToUpdate() models.ClubUpdate {
	return models.ClubUpdate{
		Name:        r.Name,
		Logo:        r.Logo,
		Description: r.Description,
		Category:    r.Category,
	}
}

// ExploreQuery holds the filter parameters of the club listing; paging is read separately
type ExploreQuery struct {
	Category string `form:"category" binding:"omitempty,max=50"`
	Search   string `form:"search" binding:"omitempty,max=100"`
}

// ClubListItem is one club in the explore listing
type ClubListItem struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Logo                 string              `json:"logo,omitempty"`
	Description          string              `json:"description"`
	Category             string              `json:"category"`
	Admin                *models.UserSummary `json:"admin,omitempty"`
	MemberCount          int                 `json:"memberCount"`
	UserMembershipStatus string              `json:"userMembershipStatus"`
	CreatedAt            time.Time           `json:"createdAt"`
}

// ExploreResponse is a page of clubs
type ExploreResponse struct {
	Clubs      []ClubListItem `json:"clubs"`
	Pagination PaginationInfo `json:"pagination"`
}

// MemberView is a membership joined with the student's public profile
type MemberView struct {
	ID       string                  `json:"id"`
	Student  models.UserSummary      `json:"student"`
	Status   models.MembershipStatus `json:"status"`
	JoinedAt time.Time               `json:"joinedAt"`
}

// ClubDetailsResponse is the full view of one club
type ClubDetailsResponse struct {
	Club                 *models.Club            `json:"club"`
	Admin                *models.UserSummary     `json:"admin,omitempty"`
	ApprovedMembers      []MemberView            `json:"approvedMembers"`
	PendingMembers       []MemberView            `json:"pendingMembers"`
	Events               []*models.Event         `json:"events"`
	Announcements        []*models.Announcement  `json:"announcements"`
	UserMembershipStatus string                  `json:"userMembershipStatus"`
	Counts               models.MembershipCounts `json:"counts"`
}

// CreateEventRequest represents the body of an event creation
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	Date        time.Time `json:"date" binding:"required"`
	Time        string    `json:"time" binding:"omitempty,max=20"`
	Venue       string    `json:"venue" binding:"omitempty,max=200"`
}

// ToCommand converts the request into a create command
func (r CreateEventRequest) ToCommand() models.CreateEventCommand {
	return models.CreateEventCommand{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Venue:       r.Venue,
	}
}

// CreateAnnouncementRequest represents the body of an announcement
type CreateAnnouncementRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}
