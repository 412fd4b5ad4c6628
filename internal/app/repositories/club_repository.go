package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/dberrors"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

const membershipUniqueConstraint = "club_memberships_club_student_key"

var clubColumns = []string{"c.id", "c.name", "c.logo", "c.description", "c.category", "c.admin_id", "c.created_at", "c.updated_at"}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresClubRepository handles database operations for clubs and their memberships
type PostgresClubRepository struct {
	db *db.PostgresDB
}

// NewClubRepository creates a new PostgresClubRepository
func NewClubRepository(pg *db.PostgresDB) *PostgresClubRepository {
	return &PostgresClubRepository{db: pg}
}

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func scanClub(row pgx.Row) (*models.Club, error) {
	var club models.Club
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.Logo,
		&club.Description,
		&club.Category,
		&club.Admin,
		&club.CreatedAt,
		&club.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	club.Members = []models.Membership{}
	return &club, nil
}

// queryClubs runs a club select and attaches the members of every returned club
func (r *PostgresClubRepository) queryClubs(ctx context.Context, q querier, query squirrel.SelectBuilder) ([]*models.Club, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0)
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if err := r.attachMembers(ctx, q, clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// attachMembers loads the memberships of the clubs in insertion order
func (r *PostgresClubRepository) attachMembers(ctx context.Context, q querier, clubs []*models.Club) error {
	if len(clubs) == 0 {
		return nil
	}

	byID := make(map[string]*models.Club, len(clubs))
	ids := make([]string, 0, len(clubs))
	for _, c := range clubs {
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	query := psql().Select("club_id", "id", "student_id", "status", "joined_at").
		From("club_memberships").
		Where(squirrel.Eq{"club_id": ids}).
		OrderBy("seq ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var clubID string
		var m models.Membership
		if err := rows.Scan(&clubID, &m.ID, &m.Student, &m.Status, &m.JoinedAt); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if c, ok := byID[clubID]; ok {
			c.Members = append(c.Members, m)
		}
	}
	return rows.Err()
}

// CreateClub inserts a new club without members
func (r *PostgresClubRepository) CreateClub(ctx context.Context, club *models.Club) error {
	query := psql().Insert("clubs").
		Columns("id", "name", "logo", "description", "category", "admin_id", "created_at", "updated_at").
		Values(club.ID, club.Name, club.Logo, club.Description, club.Category, club.Admin, club.CreatedAt, club.UpdatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating club: %w", err)
	}
	return nil
}

// GetClub retrieves a club with its members
func (r *PostgresClubRepository) GetClub(ctx context.Context, clubID string) (*models.Club, error) {
	return r.getClub(ctx, r.db.Pool, clubID)
}

func (r *PostgresClubRepository) getClub(ctx context.Context, q querier, clubID string) (*models.Club, error) {
	clubs, err := r.queryClubs(ctx, q, psql().Select(clubColumns...).From("clubs c").Where(squirrel.Eq{"c.id": clubID}))
	if err != nil {
		return nil, err
	}
	if len(clubs) == 0 {
		return nil, apperrors.ErrClubNotFound
	}
	return clubs[0], nil
}

// UpdateClub applies a partial update and returns the stored club
func (r *PostgresClubRepository) UpdateClub(ctx context.Context, clubID string, update models.ClubUpdate) (*models.Club, error) {
	if update.Empty() {
		return r.GetClub(ctx, clubID)
	}

	set := map[string]interface{}{"updated_at": helpers.NowUTC()}
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

	sql, args, err := psql().Update("clubs").SetMap(set).Where(squirrel.Eq{"id": clubID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating club: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrClubNotFound
	}
	return r.GetClub(ctx, clubID)
}

// DeleteClub removes a club; memberships, events and announcements cascade
func (r *PostgresClubRepository) DeleteClub(ctx context.Context, clubID string) error {
	sql, args, err := psql().Delete("clubs").Where(squirrel.Eq{"id": clubID}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting club: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// escapeLike escapes the LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListClubs returns one page of clubs matching the filter, newest first
func (r *PostgresClubRepository) ListClubs(ctx context.Context, filter models.ClubFilter) ([]*models.Club, int64, error) {
	where := squirrel.And{}
	if filter.Category != "" {
		where = append(where, squirrel.Eq{"c.category": filter.Category})
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.description": pattern},
		})
	}

	countSQL, countArgs, err := psql().Select("COUNT(*)").From("clubs c").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting clubs: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	query := psql().Select(clubColumns...).
		From("clubs c").
		Where(where).
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(limit)).
		Offset(offset)

	clubs, err := r.queryClubs(ctx, r.db.Pool, query)
	if err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

// FindClubsByAdmin returns every club the admin owns, newest first
func (r *PostgresClubRepository) FindClubsByAdmin(ctx context.Context, adminID string) ([]*models.Club, error) {
	query := psql().Select(clubColumns...).
		From("clubs c").
		Where(squirrel.Eq{"c.admin_id": adminID}).
		OrderBy("c.created_at DESC", "c.id DESC")
	return r.queryClubs(ctx, r.db.Pool, query)
}

// FindClubsByStudentStatus returns the clubs in which the student holds a membership
func (r *PostgresClubRepository) FindClubsByStudentStatus(ctx context.Context, studentID string, status models.MembershipStatus) ([]*models.Club, error) {
	sub := squirrel.Select("club_id").From("club_memberships").Where(squirrel.Eq{"student_id": studentID})
	if status != "" {
		sub = sub.Where(squirrel.Eq{"status": status})
	}
	subSQL, subArgs, err := sub.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	query := psql().Select(clubColumns...).
		From("clubs c").
		Where(squirrel.Expr("c.id IN ("+subSQL+")", subArgs...)).
		OrderBy("c.created_at DESC", "c.id DESC")
	return r.queryClubs(ctx, r.db.Pool, query)
}

// lockClub takes a row lock on the club for the rest of the transaction
func lockClub(ctx context.Context, tx pgx.Tx, clubID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM clubs WHERE id = $1 FOR UPDATE`, clubID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrClubNotFound
	}
	if err != nil {
		return fmt.Errorf("error locking club: %w", err)
	}
	return nil
}

func touchClub(ctx context.Context, tx pgx.Tx, clubID string) error {
	_, err := tx.Exec(ctx, `UPDATE clubs SET updated_at = $1 WHERE id = $2`, helpers.NowUTC(), clubID)
	if err != nil {
		return fmt.Errorf("error updating club timestamp: %w", err)
	}
	return nil
}

// AppendMembership inserts a membership under the club row lock
func (r *PostgresClubRepository) AppendMembership(ctx context.Context, clubID string, m models.Membership) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockClub(ctx, tx, clubID); err != nil {
			return err
		}

		var existingID string
		var existing models.MembershipStatus
		err := tx.QueryRow(ctx,
			`SELECT id, status FROM club_memberships WHERE club_id = $1 AND student_id = $2`,
			clubID, m.Student).Scan(&existingID, &existing)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
		case err != nil:
			return fmt.Errorf("error checking membership: %w", err)
		case existing.Active():
			return apperrors.ErrDuplicateMembership
		default:
			if _, err := tx.Exec(ctx, `DELETE FROM club_memberships WHERE id = $1`, existingID); err != nil {
				return fmt.Errorf("error replacing membership: %w", err)
			}
		}

		sql, args, err := psql().Insert("club_memberships").
			Columns("id", "club_id", "student_id", "status", "joined_at").
			Values(m.ID, clubID, m.Student, m.Status, m.JoinedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, membershipUniqueConstraint) {
				return apperrors.ErrDuplicateMembership
			}
			return fmt.Errorf("error inserting membership: %w", err)
		}

		return touchClub(ctx, tx, clubID)
	})
}

// UpdateMembershipStatus sets the status of one membership and returns it
func (r *PostgresClubRepository) UpdateMembershipStatus(ctx context.Context, clubID, membershipID string, status models.MembershipStatus) (*models.Membership, error) {
	var updated models.Membership
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockClub(ctx, tx, clubID); err != nil {
			return err
		}

		err := tx.QueryRow(ctx, `
			UPDATE club_memberships SET status = $1
			WHERE club_id = $2 AND id = $3
			RETURNING id, student_id, status, joined_at`,
			status, clubID, membershipID).Scan(&updated.ID, &updated.Student, &updated.Status, &updated.JoinedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrMembershipNotFound
		}
		if err != nil {
			return fmt.Errorf("error updating membership: %w", err)
		}

		return touchClub(ctx, tx, clubID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveMembership deletes the student's membership in the club and returns it
func (r *PostgresClubRepository) RemoveMembership(ctx context.Context, clubID, studentID string) (*models.Membership, error) {
	var removed models.Membership
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockClub(ctx, tx, clubID); err != nil {
			return err
		}

		err := tx.QueryRow(ctx, `
			DELETE FROM club_memberships
			WHERE club_id = $1 AND student_id = $2
			RETURNING id, student_id, status, joined_at`,
			clubID, studentID).Scan(&removed.ID, &removed.Student, &removed.Status, &removed.JoinedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrMembershipNotFound
		}
		if err != nil {
			return fmt.Errorf("error removing membership: %w", err)
		}

		return touchClub(ctx, tx, clubID)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
