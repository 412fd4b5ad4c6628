package models

import "time"

// Membership is one student's relationship to one club
type Membership struct {
	ID       string           `json:"id" bson:"id" db:"id"`
	Student  string           `json:"student" bson:"student" db:"student_id"`
	Status   MembershipStatus `json:"status" bson:"status" db:"status"`
	JoinedAt time.Time        `json:"joinedAt" bson:"joinedAt" db:"joined_at"`
}

// MembershipEntry is a membership together with the club it belongs to
type MembershipEntry struct {
	ClubID     string     `json:"clubId"`
	ClubName   string     `json:"clubName"`
	Membership Membership `json:"membership"`
}

// MembershipScope selects which memberships a listing covers.
// Exactly one of the fields is expected to be set.
type MembershipScope struct {
	ClubID    string
	AdminID   string
	StudentID string
}

// MembershipCounts tallies memberships per status
type MembershipCounts struct {
	Approved int `json:"approvedMembers"`
	Pending  int `json:"pendingMembers"`
	Rejected int `json:"rejectedMembers"`
	Total    int `json:"totalMembers"`
}

// Add counts one more membership in the given status
func (c *MembershipCounts) Add(status MembershipStatus) {
	switch status {
	case StatusApproved:
		c.Approved++
	case StatusPending:
		c.Pending++
	case StatusRejected:
		c.Rejected++
	}
	c.Total++
}
