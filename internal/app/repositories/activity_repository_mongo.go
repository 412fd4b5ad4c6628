package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/clubhub/internal/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActivityRepository stores events and announcements in their own collections
type MongoActivityRepository struct {
	events        *mongo.Collection
	announcements *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoActivityRepository
func NewMongoActivityRepository(database *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{
		events:        database.Collection(eventsCollection),
		announcements: database.Collection(announcementsCollection),
	}
}

// CreateEvent inserts a new event
func (r *MongoActivityRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	if _, err := r.events.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// CreateAnnouncement inserts a new announcement
func (r *MongoActivityRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	if _, err := r.announcements.InsertOne(ctx, announcement); err != nil {
		return fmt.Errorf("error creating announcement: %w", err)
	}
	return nil
}

// ListEvents returns the events of the given clubs by date
func (r *MongoActivityRepository) ListEvents(ctx context.Context, clubIDs []string) ([]*models.Event, error) {
	events := make([]*models.Event, 0)
	if len(clubIDs) == 0 {
		return events, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.events.Find(ctx, bson.M{"club": bson.M{"$in": clubIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}
	return events, nil
}

// ListAnnouncements returns the announcements of the given clubs, newest first
func (r *MongoActivityRepository) ListAnnouncements(ctx context.Context, clubIDs []string) ([]*models.Announcement, error) {
	announcements := make([]*models.Announcement, 0)
	if len(clubIDs) == 0 {
		return announcements, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.announcements.Find(ctx, bson.M{"club": bson.M{"$in": clubIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	if err := cur.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("error decoding announcements: %w", err)
	}
	return announcements, nil
}
