package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/clubhub/internal/app/models"
)

// PostgresActivityRepository handles event and announcement database operations
type PostgresActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new PostgresActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

// CreateEvent inserts a new event
func (r *PostgresActivityRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	sql, args, err := psql().Insert("events").
		Columns("id", "club_id", "title", "description", "date", "time", "venue", "created_at").
		Values(event.ID, event.Club, event.Title, event.Description, event.Date, event.Time, event.Venue, event.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// CreateAnnouncement inserts a new announcement
func (r *PostgresActivityRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	var createdBy any
	if announcement.CreatedBy != "" {
		createdBy = announcement.CreatedBy
	}

	sql, args, err := psql().Insert("announcements").
		Columns("id", "club_id", "content", "created_by", "created_at").
		Values(announcement.ID, announcement.Club, announcement.Content, createdBy, announcement.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating announcement: %w", err)
	}
	return nil
}

// ListEvents returns the events of the given clubs by date
func (r *PostgresActivityRepository) ListEvents(ctx context.Context, clubIDs []string) ([]*models.Event, error) {
	events := make([]*models.Event, 0)
	if len(clubIDs) == 0 {
		return events, nil
	}

	sql, args, err := psql().Select("id", "club_id", "title", "description", "date", "time", "venue", "created_at").
		From("events").
		Where(squirrel.Eq{"club_id": clubIDs}).
		OrderBy("date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Club, &e.Title, &e.Description, &e.Date, &e.Time, &e.Venue, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

// ListAnnouncements returns the announcements of the given clubs, newest first
func (r *PostgresActivityRepository) ListAnnouncements(ctx context.Context, clubIDs []string) ([]*models.Announcement, error) {
	announcements := make([]*models.Announcement, 0)
	if len(clubIDs) == 0 {
		return announcements, nil
	}

	sql, args, err := psql().Select("id", "club_id", "content", "created_by", "created_at").
		From("announcements").
		Where(squirrel.Eq{"club_id": clubIDs}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Announcement
		var createdBy *string
		if err := rows.Scan(&a.ID, &a.Club, &a.Content, &createdBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if createdBy != nil {
			a.CreatedBy = *createdBy
		}
		announcements = append(announcements, &a)
	}
	return announcements, rows.Err()
}
