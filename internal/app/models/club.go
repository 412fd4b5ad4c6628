package models

import "time"

// Club is a student club owned by one admin. Members are kept in insertion order.
type Club struct {
	ID          string       `json:"id" bson:"_id" db:"id"`
	Name        string       `json:"name" bson:"name" db:"name"`
	Logo        string       `json:"logo,omitempty" bson:"logo,omitempty" db:"logo"`
	Description string       `json:"description" bson:"description" db:"description"`
	Category    string       `json:"category" bson:"category" db:"category"`
	Admin       string       `json:"admin" bson:"admin" db:"admin_id"`
	Members     []Membership `json:"members" bson:"members"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// MembershipOf returns the membership record of a student, if any
func (c *Club) MembershipOf(studentID string) (Membership, bool) {
	for _, m := range c.Members {
		if m.Student == studentID {
			return m, true
		}
	}
	return Membership{}, false
}

// FindMembership returns the membership with the given id, if any
func (c *Club) FindMembership(membershipID string) (Membership, bool) {
	for _, m := range c.Members {
		if m.ID == membershipID {
			return m, true
		}
	}
	return Membership{}, false
}

// StatusOf returns the caller-facing membership status, "not_member" when absent
func (c *Club) StatusOf(userID string) string {
	if m, ok := c.MembershipOf(userID); ok {
		return string(m.Status)
	}
	return NotMember
}

// Counts tallies the club's members per status
func (c *Club) Counts() MembershipCounts {
	var counts MembershipCounts
	for _, m := range c.Members {
		counts.Add(m.Status)
	}
	return counts
}

// MembersWithStatus returns the members in the given status, in insertion order
func (c *Club) MembersWithStatus(status MembershipStatus) []Membership {
	out := make([]Membership, 0, len(c.Members))
	for _, m := range c.Members {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}

// Clone returns a deep copy so callers never share the member slice
func (c *Club) Clone() *Club {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Members = append([]Membership(nil), c.Members...)
	return &cp
}

// ClubUpdate carries the fields of a partial club update; nil means unchanged
type ClubUpdate struct {
	Name        *string
	Logo        *string
	Description *string
	Category    *string
}

// Empty reports whether the update changes nothing
func (u ClubUpdate) Empty() bool {
	return u.Name == nil && u.Logo == nil && u.Description == nil && u.Category == nil
}

// Apply writes the set fields onto the club
func (u ClubUpdate) Apply(c *Club) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Logo != nil {
		c.Logo = *u.Logo
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
}

// ClubFilter narrows a club listing. Page is 1-based.
type ClubFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}
