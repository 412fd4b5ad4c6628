package models

import "time"

// Event is a scheduled club activity
type Event struct {
	ID          string    `json:"id" bson:"_id" db:"id"`
	Club        string    `json:"club" bson:"club" db:"club_id"`
	Title       string    `json:"title" bson:"title" db:"title"`
	Description string    `json:"description,omitempty" bson:"description" db:"description"`
	Date        time.Time `json:"date" bson:"date" db:"date"`
	Time        string    `json:"time,omitempty" bson:"time" db:"time"`
	Venue       string    `json:"venue,omitempty" bson:"venue" db:"venue"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
}

// Announcement is a message posted to a club's members
type Announcement struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Club      string    `json:"club" bson:"club" db:"club_id"`
	Content   string    `json:"content" bson:"content" db:"content"`
	CreatedBy string    `json:"createdBy,omitempty" bson:"createdBy,omitempty" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
}
