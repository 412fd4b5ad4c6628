// Package policy applies role and ownership rules in front of the services.
// Every entry point takes the authenticated caller explicitly; a nil caller
// is an unauthenticated request.
package policy

import (
	"context"

	"github.com/yigit/clubhub/internal/app/auth"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

// MembershipPolicy guards the membership lifecycle
type MembershipPolicy struct {
	authz       *auth.AuthorizationService
	memberships services.MembershipService
}

// NewMembershipPolicy creates a new MembershipPolicy
func NewMembershipPolicy(authz *auth.AuthorizationService, memberships services.MembershipService) *MembershipPolicy {
	return &MembershipPolicy{authz: authz, memberships: memberships}
}

// RequestJoin lets a student ask to join a club
func (p *MembershipPolicy) RequestJoin(ctx context.Context, caller *models.Caller, cmd models.JoinCommand) (*models.Membership, error) {
	if err := p.authz.RequireStudent(caller); err != nil {
		return nil, err
	}
	return p.memberships.RequestJoin(ctx, cmd.ClubID, caller.UserID)
}

// Decide lets the club's admin approve or reject a request
func (p *MembershipPolicy) Decide(ctx context.Context, caller *models.Caller, cmd models.DecideCommand) (*models.Membership, error) {
	if _, err := p.authz.ValidateClubOwnership(ctx, caller, cmd.ClubID); err != nil {
		return nil, err
	}
	return p.memberships.Decide(ctx, cmd.ClubID, cmd.MembershipID, cmd.Action)
}

// Leave removes the calling student's own membership
func (p *MembershipPolicy) Leave(ctx context.Context, caller *models.Caller, cmd models.LeaveCommand) error {
	if err := p.authz.RequireStudent(caller); err != nil {
		return err
	}
	return p.memberships.Leave(ctx, cmd.ClubID, caller.UserID)
}

// List returns the memberships visible to the caller, filtered by status,
// along with the per-status counts of the same scope.
// Students see their own records; admins see the clubs they run.
func (p *MembershipPolicy) List(ctx context.Context, caller *models.Caller, q models.ListQuery) ([]models.MembershipEntry, models.MembershipCounts, error) {
	var counts models.MembershipCounts
	if err := p.authz.RequireCaller(caller); err != nil {
		return nil, counts, err
	}

	scope := models.MembershipScope{ClubID: q.ClubID}
	switch {
	case caller.IsStudent():
		scope.StudentID = caller.UserID
	case caller.IsAdmin():
		if q.ClubID == "" {
			scope.AdminID = caller.UserID
		} else if _, err := p.authz.ValidateClubOwnership(ctx, caller, q.ClubID); err != nil {
			return nil, counts, err
		}
	default:
		return nil, counts, apperrors.NewForbiddenError("unknown role")
	}

	if err := services.ValidateStatusFilter(q.Status); err != nil {
		return nil, counts, err
	}

	// Counts and entries come from the same snapshot
	all, err := p.memberships.ListByStatus(ctx, scope, "")
	if err != nil {
		return nil, counts, err
	}
	counts = services.Summarize(all)

	entries := make([]models.MembershipEntry, 0, counts.Total)
	for e := range all {
		if q.Status == "" || e.Membership.Status == q.Status {
			entries = append(entries, e)
		}
	}

	return entries, counts, nil
}
