package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/logger"
)

// Common authorization errors
var (
	ErrNotStudent = apperrors.NewForbiddenError("only students can perform this action")
	ErrNotAdmin   = apperrors.NewForbiddenError("only admins can perform this action")
	ErrNotOwner   = apperrors.NewForbiddenError("you are not the admin of this club")
)

// ClubGetter is the slice of the club repository ownership checks need
type ClubGetter interface {
	GetClub(ctx context.Context, clubID string) (*models.Club, error)
}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	clubs ClubGetter
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(clubs ClubGetter) *AuthorizationService {
	return &AuthorizationService{clubs: clubs}
}

// RequireCaller rejects anonymous requests
func (s *AuthorizationService) RequireCaller(caller *models.Caller) error {
	if caller == nil || caller.UserID == "" {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// RequireStudent validates that the caller is a student
func (s *AuthorizationService) RequireStudent(caller *models.Caller) error {
	if err := s.RequireCaller(caller); err != nil {
		return err
	}
	if !caller.IsStudent() {
		return ErrNotStudent
	}
	return nil
}

// RequireAdmin validates that the caller is an admin
func (s *AuthorizationService) RequireAdmin(caller *models.Caller) error {
	if err := s.RequireCaller(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// CanManageClub reports whether the caller administers the club
func (s *AuthorizationService) CanManageClub(ctx context.Context, caller *models.Caller, clubID string) (*models.Club, bool, error) {
	if !caller.IsAdmin() {
		return nil, false, nil
	}

	club, err := s.clubs.GetClub(ctx, clubID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, false, err
		}
		logger.Error().Err(err).Str("clubID", clubID).Msg("Error getting club in CanManageClub")
		return nil, false, fmt.Errorf("failed to check club ownership: %w", err)
	}

	return club, club.Admin == caller.UserID, nil
}

// ValidateClubOwnership returns the club when the caller is its admin
func (s *AuthorizationService) ValidateClubOwnership(ctx context.Context, caller *models.Caller, clubID string) (*models.Club, error) {
	if err := s.RequireAdmin(caller); err != nil {
		return nil, err
	}

	club, ok, err := s.CanManageClub(ctx, caller, clubID)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn().Str("clubID", clubID).Str("userID", caller.UserID).Msg("Club ownership check failed")
		return nil, ErrNotOwner
	}

	return club, nil
}
