package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
)

type mockClubGetter struct {
	clubs map[string]*models.Club
	err   error
}

func (m *mockClubGetter) GetClub(_ context.Context, clubID string) (*models.Club, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.clubs[clubID]
	if !ok {
		return nil, apperrors.ErrClubNotFound
	}
	return c, nil
}

func TestRoleChecks(t *testing.T) {
	s := NewAuthorizationService(&mockClubGetter{})
	student := &models.Caller{UserID: "s1", Role: models.RoleStudent}
	admin := &models.Caller{UserID: "a1", Role: models.RoleAdmin}

	tests := []struct {
		name  string
		check func(*models.Caller) error
		in    *models.Caller
		want  error
	}{
		{"caller nil", s.RequireCaller, nil, apperrors.ErrUnauthenticated},
		{"caller empty id", s.RequireCaller, &models.Caller{Role: models.RoleStudent}, apperrors.ErrUnauthenticated},
		{"student ok", s.RequireStudent, student, nil},
		{"student as admin", s.RequireStudent, admin, apperrors.ErrPermissionDenied},
		{"admin ok", s.RequireAdmin, admin, nil},
		{"admin as student", s.RequireAdmin, student, apperrors.ErrPermissionDenied},
		{"admin nil", s.RequireAdmin, nil, apperrors.ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.in)
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected err %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateClubOwnership(t *testing.T) {
	getter := &mockClubGetter{clubs: map[string]*models.Club{
		"c1": {ID: "c1", Admin: "a1"},
	}}
	s := NewAuthorizationService(getter)
	ctx := context.Background()

	club, err := s.ValidateClubOwnership(ctx, &models.Caller{UserID: "a1", Role: models.RoleAdmin}, "c1")
	if err != nil || club.ID != "c1" {
		t.Fatalf("owner = %+v, %v", club, err)
	}

	if _, err := s.ValidateClubOwnership(ctx, &models.Caller{UserID: "a2", Role: models.RoleAdmin}, "c1"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner err = %v", err)
	}
	if _, err := s.ValidateClubOwnership(ctx, &models.Caller{UserID: "a1", Role: models.RoleAdmin}, "missing"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("missing club err = %v", err)
	}
	if _, err := s.ValidateClubOwnership(ctx, &models.Caller{UserID: "a1", Role: models.RoleStudent}, "c1"); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("student err = %v", err)
	}

	getter.err = errors.New("connection reset")
	if _, err := s.ValidateClubOwnership(ctx, &models.Caller{UserID: "a1", Role: models.RoleAdmin}, "c1"); err == nil || errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("store failure err = %v, want wrapped store error", err)
	}
}
