package models

import "time"

// Caller is the authenticated identity a request is made with.
// A nil *Caller means the request carries no valid credentials.
type Caller struct {
	UserID string
	Role   RoleType
}

// IsAdmin reports whether the caller has the admin role
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// IsStudent reports whether the caller has the student role
func (c *Caller) IsStudent() bool {
	return c != nil && c.Role == RoleStudent
}

// JoinCommand asks for membership in a club on behalf of the caller
type JoinCommand struct {
	ClubID string
}

// DecideCommand carries an admin's verdict on one membership
type DecideCommand struct {
	ClubID       string
	MembershipID string
	Action       Decision
}

// LeaveCommand removes the caller's own membership from a club
type LeaveCommand struct {
	ClubID string
}

// ListQuery selects memberships visible to the caller. An empty ClubID means
// every club in the caller's scope; an empty Status means any status.
type ListQuery struct {
	ClubID string
	Status MembershipStatus
}

// CreateClubCommand holds the fields of a new club
type CreateClubCommand struct {
	Name        string
	Logo        string
	Description string
	Category    string
}

// CreateEventCommand holds the fields of a new club event
type CreateEventCommand struct {
	Title       string
	Description string
	Date        time.Time
	Time        string
	Venue       string
}

// SignupCommand holds the fields of a new account
type SignupCommand struct {
	Name     string
	Email    string
	Password string
	Role     RoleType
}
