package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

// Valid reports whether the role is a known one
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// MembershipStatus is the state of a membership request
type MembershipStatus string

const (
	StatusPending  MembershipStatus = "pending"
	StatusApproved MembershipStatus = "approved"
	StatusRejected MembershipStatus = "rejected"
)

// NotMember is reported for a caller with no membership record in a club.
const NotMember = "not_member"

// Valid reports whether the status is one of the three lifecycle states
func (s MembershipStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Active reports whether the status blocks a new join request
func (s MembershipStatus) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// Decision is an admin's verdict on a membership request
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status returns the membership status a decision leads to
func (d Decision) Status() (MembershipStatus, bool) {
	switch d {
	case DecisionApprove:
		return StatusApproved, true
	case DecisionReject:
		return StatusRejected, true
	}
	return "", false
}
