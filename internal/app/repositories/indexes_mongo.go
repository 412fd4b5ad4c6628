package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the indexes the document repositories rely on.
// CreateMany is idempotent for identical definitions.
func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_users_email"),
			},
		},
		clubsCollection: {
			{
				Keys:    bson.D{{Key: "admin", Value: 1}},
				Options: options.Index().SetName("idx_clubs_admin"),
			},
			{
				Keys:    bson.D{{Key: "members.student", Value: 1}},
				Options: options.Index().SetName("idx_clubs_member_student"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_clubs_category_created"),
			},
		},
		eventsCollection: {
			{
				Keys:    bson.D{{Key: "club", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("idx_events_club_date"),
			},
		},
		announcementsCollection: {
			{
				Keys:    bson.D{{Key: "club", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_announcements_club_created"),
			},
		},
	}

	for name, indexes := range specs {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}
