package services

import (
	"cmp"
	"context"
	"errors"
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

// MembershipService drives the membership request lifecycle:
// pending -> approved | rejected, and removal of any record via Leave.
// It performs no authorization; see the policy package.
type MembershipService interface {
	RequestJoin(ctx context.Context, clubID, studentID string) (*models.Membership, error)
	Decide(ctx context.Context, clubID, membershipID string, decision models.Decision) (*models.Membership, error)
	Leave(ctx context.Context, clubID, studentID string) error
	// ListByStatus returns a finite, restartable sequence ordered by joinedAt
	// descending. An empty status matches every membership.
	ListByStatus(ctx context.Context, scope models.MembershipScope, status models.MembershipStatus) (iter.Seq[models.MembershipEntry], error)
}

// membershipServiceImpl implements MembershipService
type membershipServiceImpl struct {
	clubRepo repositories.ClubRepository
	logger   zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(clubRepo repositories.ClubRepository, logger zerolog.Logger) MembershipService {
	return &membershipServiceImpl{
		clubRepo: clubRepo,
		logger:   logger,
		now:      helpers.NowUTC,
		newID:    func() string { return uuid.New().String() },
	}
}

// classifyExisting maps a student's current record to the join error it causes
func classifyExisting(m models.Membership) error {
	switch m.Status {
	case models.StatusApproved:
		return apperrors.ErrAlreadyMember
	case models.StatusPending:
		return apperrors.ErrRequestPending
	}
	return nil
}

// RequestJoin appends a pending membership for the student
func (s *membershipServiceImpl) RequestJoin(ctx context.Context, clubID, studentID string) (*models.Membership, error) {
	if clubID == "" || studentID == "" {
		return nil, apperrors.NewBadRequestError("club and student are required")
	}

	club, err := s.clubRepo.GetClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if existing, ok := club.MembershipOf(studentID); ok {
		if err := classifyExisting(existing); err != nil {
			return nil, err
		}
	}

	membership := models.Membership{
		ID:       s.newID(),
		Student:  studentID,
		Status:   models.StatusPending,
		JoinedAt: s.now(),
	}

	if err := s.clubRepo.AppendMembership(ctx, clubID, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateMembership) {
			// Lost a race: report the winning record's kind.
			return nil, s.classifyRace(ctx, clubID, studentID)
		}
		s.logger.Error().Err(err).
			Str("clubID", clubID).
			Str("studentID", studentID).
			Msg("Failed to append membership")
		return nil, err
	}

	s.logger.Info().
		Str("clubID", clubID).
		Str("studentID", studentID).
		Str("membershipID", membership.ID).
		Msg("Membership requested")

	return &membership, nil
}

func (s *membershipServiceImpl) classifyRace(ctx context.Context, clubID, studentID string) error {
	club, err := s.clubRepo.GetClub(ctx, clubID)
	if err != nil {
		return err
	}
	if existing, ok := club.MembershipOf(studentID); ok {
		if err := classifyExisting(existing); err != nil {
			return err
		}
	}
	return apperrors.ErrRequestPending
}

// Decide sets a membership to approved or rejected. Any current status is accepted.
func (s *membershipServiceImpl) Decide(ctx context.Context, clubID, membershipID string, decision models.Decision) (*models.Membership, error) {
	status, ok := decision.Status()
	if !ok {
		return nil, apperrors.ErrInvalidAction
	}

	updated, err := s.clubRepo.UpdateMembershipStatus(ctx, clubID, membershipID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("clubID", clubID).
		Str("membershipID", membershipID).
		Str("status", string(updated.Status)).
		Msg("Membership decided")

	return updated, nil
}

// Leave deletes the student's membership whatever its status
func (s *membershipServiceImpl) Leave(ctx context.Context, clubID, studentID string) error {
	removed, err := s.clubRepo.RemoveMembership(ctx, clubID, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMembershipNotFound) {
			return apperrors.ErrNotAMember
		}
		return err
	}

	s.logger.Info().
		Str("clubID", clubID).
		Str("studentID", studentID).
		Str("previousStatus", string(removed.Status)).
		Msg("Membership removed")

	return nil
}

// ListByStatus reads the scope once and filters lazily over that snapshot
func (s *membershipServiceImpl) ListByStatus(ctx context.Context, scope models.MembershipScope, status models.MembershipStatus) (iter.Seq[models.MembershipEntry], error) {
	if err := ValidateStatusFilter(status); err != nil {
		return nil, err
	}

	clubs, err := s.scopeClubs(ctx, scope)
	if err != nil {
		return nil, err
	}

	entries := make([]models.MembershipEntry, 0)
	for _, club := range clubs {
		for _, m := range club.Members {
			if scope.StudentID != "" && m.Student != scope.StudentID {
				continue
			}
			entries = append(entries, models.MembershipEntry{ClubID: club.ID, ClubName: club.Name, Membership: m})
		}
	}
	slices.SortStableFunc(entries, func(a, b models.MembershipEntry) int {
		if c := b.Membership.JoinedAt.Compare(a.Membership.JoinedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Membership.ID, b.Membership.ID)
	})

	return func(yield func(models.MembershipEntry) bool) {
		for _, e := range entries {
			if status != "" && e.Membership.Status != status {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}, nil
}

func (s *membershipServiceImpl) scopeClubs(ctx context.Context, scope models.MembershipScope) ([]*models.Club, error) {
	switch {
	case scope.ClubID != "":
		club, err := s.clubRepo.GetClub(ctx, scope.ClubID)
		if err != nil {
			return nil, err
		}
		return []*models.Club{club}, nil
	case scope.AdminID != "":
		return s.clubRepo.FindClubsByAdmin(ctx, scope.AdminID)
	case scope.StudentID != "":
		return s.clubRepo.FindClubsByStudentStatus(ctx, scope.StudentID, "")
	}
	return nil, apperrors.NewBadRequestError("a membership scope is required")
}

// ValidateStatusFilter accepts an empty status or one of the known statuses
func ValidateStatusFilter(status models.MembershipStatus) error {
	if status != "" && !status.Valid() {
		return apperrors.NewBadRequestError("status must be one of pending, approved, rejected")
	}
	return nil
}

// Summarize counts the memberships of a sequence per status
func Summarize(seq iter.Seq[models.MembershipEntry]) models.MembershipCounts {
	var counts models.MembershipCounts
	for e := range seq {
		counts.Add(e.Membership.Status)
	}
	return counts
}
