package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/helpers"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	clubsCollection         = "clubs"
	eventsCollection        = "events"
	announcementsCollection = "announcements"
	usersCollection         = "users"
)

var activeStatuses = bson.A{string(models.StatusPending), string(models.StatusApproved)}

// MongoClubRepository stores clubs as documents with embedded members.
// Every membership write is a single-document update, which MongoDB applies atomically.
type MongoClubRepository struct {
	clubs         *mongo.Collection
	events        *mongo.Collection
	announcements *mongo.Collection
}

// NewMongoClubRepository creates a new MongoClubRepository
func NewMongoClubRepository(database *mongo.Database) *MongoClubRepository {
	return &MongoClubRepository{
		clubs:         database.Collection(clubsCollection),
		events:        database.Collection(eventsCollection),
		announcements: database.Collection(announcementsCollection),
	}
}

func normalizeClub(c *models.Club) *models.Club {
	if c.Members == nil {
		c.Members = []models.Membership{}
	}
	return c
}

func (r *MongoClubRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*models.Club, error) {
	cur, err := r.clubs.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer cur.Close(ctx)

	clubs := make([]*models.Club, 0)
	for cur.Next(ctx) {
		var c models.Club
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("error decoding club: %w", err)
		}
		clubs = append(clubs, normalizeClub(&c))
	}
	return clubs, cur.Err()
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
}

// clubExists distinguishes a missing club from a failed membership guard
func (r *MongoClubRepository) clubExists(ctx context.Context, clubID string) (bool, error) {
	n, err := r.clubs.CountDocuments(ctx, bson.M{"_id": clubID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error counting clubs: %w", err)
	}
	return n > 0, nil
}

// CreateClub inserts a new club document
func (r *MongoClubRepository) CreateClub(ctx context.Context, club *models.Club) error {
	doc := normalizeClub(club.Clone())
	if _, err := r.clubs.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("error creating club: %w", err)
	}
	return nil
}

// GetClub retrieves a club document
func (r *MongoClubRepository) GetClub(ctx context.Context, clubID string) (*models.Club, error) {
	var c models.Club
	err := r.clubs.FindOne(ctx, bson.M{"_id": clubID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrClubNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching club: %w", err)
	}
	return normalizeClub(&c), nil
}

// UpdateClub applies a partial update and returns the stored club
func (r *MongoClubRepository) UpdateClub(ctx context.Context, clubID string, update models.ClubUpdate) (*models.Club, error) {
	if update.Empty() {
		return r.GetClub(ctx, clubID)
	}

	set := bson.M{"updatedAt": helpers.NowUTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Logo != nil {
		set["logo"] = *update.Logo
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	var c models.Club
	err := r.clubs.FindOneAndUpdate(ctx,
		bson.M{"_id": clubID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrClubNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating club: %w", err)
	}
	return normalizeClub(&c), nil
}

// DeleteClub removes the club document and its activity records
func (r *MongoClubRepository) DeleteClub(ctx context.Context, clubID string) error {
	res, err := r.clubs.DeleteOne(ctx, bson.M{"_id": clubID})
	if err != nil {
		return fmt.Errorf("error deleting club: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrClubNotFound
	}

	if _, err := r.events.DeleteMany(ctx, bson.M{"club": clubID}); err != nil {
		return fmt.Errorf("error deleting club events: %w", err)
	}
	if _, err := r.announcements.DeleteMany(ctx, bson.M{"club": clubID}); err != nil {
		return fmt.Errorf("error deleting club announcements: %w", err)
	}
	return nil
}

// ListClubs returns one page of clubs matching the filter, newest first
func (r *MongoClubRepository) ListClubs(ctx context.Context, filter models.ClubFilter) ([]*models.Club, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}

	total, err := r.clubs.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting clubs: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	clubs, err := r.find(ctx, query, newestFirst().SetSkip(int64(offset)).SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

// FindClubsByAdmin returns every club the admin owns, newest first
func (r *MongoClubRepository) FindClubsByAdmin(ctx context.Context, adminID string) ([]*models.Club, error) {
	return r.find(ctx, bson.M{"admin": adminID}, newestFirst())
}

// FindClubsByStudentStatus returns the clubs in which the student holds a membership
func (r *MongoClubRepository) FindClubsByStudentStatus(ctx context.Context, studentID string, status models.MembershipStatus) ([]*models.Club, error) {
	match := bson.M{"student": studentID}
	if status != "" {
		match["status"] = string(status)
	}
	return r.find(ctx, bson.M{"members": bson.M{"$elemMatch": match}}, newestFirst())
}

// AppendMembership adds m with one guarded pipeline update: the filter rejects
// clubs where the student is already active, and the pipeline drops any
// rejected record of the student before appending.
func (r *MongoClubRepository) AppendMembership(ctx context.Context, clubID string, m models.Membership) error {
	filter := bson.M{
		"_id": clubID,
		"members": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"student": m.Student,
			"status":  bson.M{"$in": activeStatuses},
		}}},
	}

	others := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$members", bson.A{}}}}},
		{Key: "as", Value: "m"},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$m.student", m.Student}}}},
	}}}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "members", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				others,
				bson.D{{Key: "$literal", Value: bson.A{m}}},
			}}}},
			{Key: "updatedAt", Value: helpers.NowUTC()},
		}}},
	}

	res, err := r.clubs.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error appending membership: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	exists, err := r.clubExists(ctx, clubID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrClubNotFound
	}
	return apperrors.ErrDuplicateMembership
}

// UpdateMembershipStatus sets the status of one embedded membership
func (r *MongoClubRepository) UpdateMembershipStatus(ctx context.Context, clubID, membershipID string, status models.MembershipStatus) (*models.Membership, error) {
	var c models.Club
	err := r.clubs.FindOneAndUpdate(ctx,
		bson.M{"_id": clubID, "members.id": membershipID},
		bson.M{"$set": bson.M{
			"members.$.status": string(status),
			"updatedAt":        helpers.NowUTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missingMembership(ctx, clubID)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating membership: %w", err)
	}

	m, ok := c.FindMembership(membershipID)
	if !ok {
		return nil, apperrors.ErrMembershipNotFound
	}
	return &m, nil
}

// RemoveMembership pulls the student's membership and returns the removed record
func (r *MongoClubRepository) RemoveMembership(ctx context.Context, clubID, studentID string) (*models.Membership, error) {
	var before models.Club
	err := r.clubs.FindOneAndUpdate(ctx,
		bson.M{"_id": clubID, "members.student": studentID},
		bson.M{
			"$pull": bson.M{"members": bson.M{"student": studentID}},
			"$set":  bson.M{"updatedAt": helpers.NowUTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missingMembership(ctx, clubID)
	}
	if err != nil {
		return nil, fmt.Errorf("error removing membership: %w", err)
	}

	m, ok := before.MembershipOf(studentID)
	if !ok {
		return nil, apperrors.ErrMembershipNotFound
	}
	return &m, nil
}

func (r *MongoClubRepository) missingMembership(ctx context.Context, clubID string) error {
	exists, err := r.clubExists(ctx, clubID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrClubNotFound
	}
	return apperrors.ErrMembershipNotFound
}
