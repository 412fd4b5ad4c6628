package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/app/repositories"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/logger"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances one second per call
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := baseTime
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

type membershipFixture struct {
	repos *repositories.Repositories
	svc   *membershipServiceImpl
	club  *models.Club
	admin string
}

func newClub(t *testing.T, repos *repositories.Repositories, name, adminID string) *models.Club {
	t.Helper()
	club := &models.Club{
		ID:          uuid.New().String(),
		Name:        name,
		Description: name + " description",
		Category:    "Games",
		Admin:       adminID,
		Members:     []models.Membership{},
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	}
	if err := repos.Clubs.CreateClub(context.Background(), club); err != nil {
		t.Fatalf("CreateClub: %v", err)
	}
	return club
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()
	repos := repositories.NewMemoryRepositories()
	svc := NewMembershipService(repos.Clubs, logger.Nop()).(*membershipServiceImpl)
	svc.now = stepClock()

	admin := uuid.New().String()
	return &membershipFixture{
		repos: repos,
		svc:   svc,
		club:  newClub(t, repos, "Chess Club", admin),
		admin: admin,
	}
}

func (f *membershipFixture) statusOf(t *testing.T, studentID string) string {
	t.Helper()
	club, err := f.repos.Clubs.GetClub(context.Background(), f.club.ID)
	if err != nil {
		t.Fatalf("GetClub: %v", err)
	}
	return club.StatusOf(studentID)
}

func TestRequestJoinCreatesPendingMembership(t *testing.T) {
	f := newMembershipFixture(t)
	student := uuid.New().String()

	m, err := f.svc.RequestJoin(context.Background(), f.club.ID, student)
	if err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}
	if m.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", m.Status)
	}
	if m.Student != student || m.ID == "" {
		t.Errorf("unexpected membership %+v", m)
	}
	if m.JoinedAt.IsZero() {
		t.Error("joinedAt not set")
	}
	if got := f.statusOf(t, student); got != string(models.StatusPending) {
		t.Errorf("stored status = %q, want pending", got)
	}
}

func TestRequestJoinRejectsActiveMemberships(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	student := uuid.New().String()

	m, err := f.svc.RequestJoin(ctx, f.club.ID, student)
	if err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}

	if _, err := f.svc.RequestJoin(ctx, f.club.ID, student); !errors.Is(err, apperrors.ErrRequestPending) {
		t.Fatalf("second join err = %v, want ErrRequestPending", err)
	}

	if _, err := f.svc.Decide(ctx, f.club.ID, m.ID, models.DecisionApprove); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if _, err := f.svc.RequestJoin(ctx, f.club.ID, student); !errors.Is(err, apperrors.ErrAlreadyMember) {
		t.Fatalf("join after approval err = %v, want ErrAlreadyMember", err)
	}

	club, _ := f.repos.Clubs.GetClub(ctx, f.club.ID)
	if len(club.Members) != 1 {
		t.Errorf("members = %d, want 1", len(club.Members))
	}
}

func TestRequestJoinAfterRejectionReplacesRecord(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	student := uuid.New().String()

	first, _ := f.svc.RequestJoin(ctx, f.club.ID, student)
	if _, err := f.svc.Decide(ctx, f.club.ID, first.ID, models.DecisionReject); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	second, err := f.svc.RequestJoin(ctx, f.club.ID, student)
	if err != nil {
		t.Fatalf("re-request after rejection: %v", err)
	}
	if second.ID == first.ID {
		t.Error("expected a fresh membership record")
	}

	club, _ := f.repos.Clubs.GetClub(ctx, f.club.ID)
	if len(club.Members) != 1 || club.Members[0].Status != models.StatusPending {
		t.Errorf("members = %+v, want one pending record", club.Members)
	}
}

func TestRequestJoinUnknownClub(t *testing.T) {
	f := newMembershipFixture(t)

	_, err := f.svc.RequestJoin(context.Background(), uuid.New().String(), uuid.New().String())
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestRequestJoinRequiresIDs(t *testing.T) {
	f := newMembershipFixture(t)

	if _, err := f.svc.RequestJoin(context.Background(), f.club.ID, ""); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("err = %v, want bad request", err)
	}
}

func TestConcurrentJoinsBySameStudentCreateOneRecord(t *testing.T) {
	f := newMembershipFixture(t)
	student := uuid.New().String()

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		errs      []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RequestJoin(context.Background(), f.club.ID, student)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("successes = %d, want 1", successes)
	}
	for _, err := range errs {
		if !errors.Is(err, apperrors.ErrRequestPending) {
			t.Errorf("loser err = %v, want ErrRequestPending", err)
		}
	}

	club, _ := f.repos.Clubs.GetClub(context.Background(), f.club.ID)
	if len(club.Members) != 1 {
		t.Errorf("members = %d, want 1", len(club.Members))
	}
}

func TestConcurrentJoinsByDifferentStudentsAllLand(t *testing.T) {
	f := newMembershipFixture(t)

	const students = 25
	var wg sync.WaitGroup
	errCh := make(chan error, students)
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.RequestJoin(context.Background(), f.club.ID, uuid.New().String()); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("RequestJoin: %v", err)
	}

	club, _ := f.repos.Clubs.GetClub(context.Background(), f.club.ID)
	if got := club.Counts().Pending; got != students {
		t.Errorf("pending = %d, want %d", got, students)
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		initial models.Decision
		action  models.Decision
		want    models.MembershipStatus
		wantErr error
	}{
		{name: "approve pending", action: models.DecisionApprove, want: models.StatusApproved},
		{name: "reject pending", action: models.DecisionReject, want: models.StatusRejected},
		{name: "reject approved", initial: models.DecisionApprove, action: models.DecisionReject, want: models.StatusRejected},
		{name: "approve rejected", initial: models.DecisionReject, action: models.DecisionApprove, want: models.StatusApproved},
		{name: "invalid action", action: "ban", want: models.StatusPending, wantErr: apperrors.ErrInvalidAction},
		{name: "empty action", action: "", want: models.StatusPending, wantErr: apperrors.ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMembershipFixture(t)
			ctx := context.Background()
			student := uuid.New().String()

			m, err := f.svc.RequestJoin(ctx, f.club.ID, student)
			if err != nil {
				t.Fatalf("RequestJoin: %v", err)
			}
			if tt.initial != "" {
				if _, err := f.svc.Decide(ctx, f.club.ID, m.ID, tt.initial); err != nil {
					t.Fatalf("initial Decide: %v", err)
				}
			}

			got, err := f.svc.Decide(ctx, f.club.ID, m.ID, tt.action)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("Decide: %v", err)
				}
				if got.Status != tt.want || got.ID != m.ID {
					t.Errorf("decided = %+v, want status %q", got, tt.want)
				}
			}

			if status := f.statusOf(t, student); status != string(tt.want) {
				t.Errorf("stored status = %q, want %q", status, tt.want)
			}
		})
	}
}

func TestDecideUnknownMembership(t *testing.T) {
	f := newMembershipFixture(t)

	_, err := f.svc.Decide(context.Background(), f.club.ID, uuid.New().String(), models.DecisionApprove)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDecideMembershipOfAnotherClub(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	other := newClub(t, f.repos, "Drama Club", f.admin)

	m, _ := f.svc.RequestJoin(ctx, other.ID, uuid.New().String())
	if _, err := f.svc.Decide(ctx, f.club.ID, m.ID, models.DecisionApprove); !errors.Is(err, apperrors.ErrMembershipNotFound) {
		t.Fatalf("err = %v, want ErrMembershipNotFound", err)
	}
}

func TestLeave(t *testing.T) {
	for _, decision := range []models.Decision{"", models.DecisionApprove, models.DecisionReject} {
		t.Run("after "+string(decision), func(t *testing.T) {
			f := newMembershipFixture(t)
			ctx := context.Background()
			student := uuid.New().String()

			m, _ := f.svc.RequestJoin(ctx, f.club.ID, student)
			if decision != "" {
				if _, err := f.svc.Decide(ctx, f.club.ID, m.ID, decision); err != nil {
					t.Fatalf("Decide: %v", err)
				}
			}

			if err := f.svc.Leave(ctx, f.club.ID, student); err != nil {
				t.Fatalf("Leave: %v", err)
			}
			if got := f.statusOf(t, student); got != models.NotMember {
				t.Errorf("status after leave = %q, want not_member", got)
			}
			if err := f.svc.Leave(ctx, f.club.ID, student); !errors.Is(err, apperrors.ErrNotAMember) {
				t.Errorf("second leave err = %v, want ErrNotAMember", err)
			}
		})
	}
}

func TestLeaveUnknownClub(t *testing.T) {
	f := newMembershipFixture(t)

	err := f.svc.Leave(context.Background(), uuid.New().String(), uuid.New().String())
	if !errors.Is(err, apperrors.ErrClubNotFound) {
		t.Fatalf("err = %v, want ErrClubNotFound", err)
	}
}

func TestChessClubScenario(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	s1, s2 := uuid.New().String(), uuid.New().String()

	m, err := f.svc.RequestJoin(ctx, f.club.ID, s1)
	if err != nil {
		t.Fatalf("RequestJoin: %v", err)
	}
	if _, err := f.svc.Decide(ctx, f.club.ID, m.ID, models.DecisionApprove); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	club, _ := f.repos.Clubs.GetClub(ctx, f.club.ID)
	counts := club.Counts()
	if counts.Approved != 1 || counts.Pending != 0 {
		t.Errorf("counts = %+v, want approvedMembers=1 pendingMembers=0", counts)
	}
	if got := club.StatusOf(s2); got != models.NotMember {
		t.Errorf("S2 status = %q, want not_member", got)
	}
	if err := f.svc.Leave(ctx, f.club.ID, s2); !errors.Is(err, apperrors.ErrNotAMember) {
		t.Errorf("S2 leave err = %v, want ErrNotAMember", err)
	}
}

func TestListByStatusOrderAndFilter(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		m, err := f.svc.RequestJoin(ctx, f.club.ID, fmt.Sprintf("student-%d", i))
		if err != nil {
			t.Fatalf("RequestJoin: %v", err)
		}
		ids = append(ids, m.ID)
	}
	if _, err := f.svc.Decide(ctx, f.club.ID, ids[1], models.DecisionApprove); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	seq, err := f.svc.ListByStatus(ctx, models.MembershipScope{ClubID: f.club.ID}, models.StatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}

	var got []string
	for e := range seq {
		if e.Membership.Status != models.StatusPending {
			t.Errorf("yielded %q membership", e.Membership.Status)
		}
		if e.ClubID != f.club.ID || e.ClubName != "Chess Club" {
			t.Errorf("entry club = %q/%q", e.ClubID, e.ClubName)
		}
		got = append(got, e.Membership.ID)
	}
	want := []string{ids[3], ids[2], ids[0]}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want newest first %v", got, want)
	}

	// The sequence is restartable
	var again []string
	for e := range seq {
		again = append(again, e.Membership.ID)
	}
	if !slices.Equal(again, got) {
		t.Errorf("second pass = %v, want %v", again, got)
	}
}

func TestListByStatusTieBreaksByID(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	f.svc.now = func() time.Time { return baseTime }

	for i := 0; i < 3; i++ {
		if _, err := f.svc.RequestJoin(ctx, f.club.ID, fmt.Sprintf("student-%d", i)); err != nil {
			t.Fatalf("RequestJoin: %v", err)
		}
	}

	seq, err := f.svc.ListByStatus(ctx, models.MembershipScope{ClubID: f.club.ID}, "")
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	var got []string
	for e := range seq {
		got = append(got, e.Membership.ID)
	}
	if !slices.IsSorted(got) {
		t.Errorf("equal joinedAt should order by id ascending: %v", got)
	}
}

func TestListByStatusStopsEarly(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, _ = f.svc.RequestJoin(ctx, f.club.ID, fmt.Sprintf("student-%d", i))
	}

	seq, _ := f.svc.ListByStatus(ctx, models.MembershipScope{ClubID: f.club.ID}, models.StatusPending)
	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("consumed %d, want 2", n)
	}
}

func TestListByStatusScopes(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	other := newClub(t, f.repos, "Drama Club", f.admin)
	foreign := newClub(t, f.repos, "Robotics Club", uuid.New().String())
	student := uuid.New().String()

	for _, c := range []*models.Club{f.club, other, foreign} {
		if _, err := f.svc.RequestJoin(ctx, c.ID, student); err != nil {
			t.Fatalf("RequestJoin: %v", err)
		}
		if _, err := f.svc.RequestJoin(ctx, c.ID, uuid.New().String()); err != nil {
			t.Fatalf("RequestJoin: %v", err)
		}
	}

	count := func(scope models.MembershipScope) int {
		seq, err := f.svc.ListByStatus(ctx, scope, "")
		if err != nil {
			t.Fatalf("ListByStatus(%+v): %v", scope, err)
		}
		return Summarize(seq).Total
	}

	if got := count(models.MembershipScope{AdminID: f.admin}); got != 4 {
		t.Errorf("admin scope = %d, want 4", got)
	}
	if got := count(models.MembershipScope{StudentID: student}); got != 3 {
		t.Errorf("student scope = %d, want 3", got)
	}
	if got := count(models.MembershipScope{ClubID: f.club.ID, StudentID: student}); got != 1 {
		t.Errorf("club+student scope = %d, want 1", got)
	}
	if got := count(models.MembershipScope{AdminID: uuid.New().String()}); got != 0 {
		t.Errorf("admin without clubs = %d, want 0", got)
	}
}

func TestListByStatusRejectsBadInput(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()

	if _, err := f.svc.ListByStatus(ctx, models.MembershipScope{ClubID: f.club.ID}, "archived"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("unknown status err = %v, want bad request", err)
	}
	if _, err := f.svc.ListByStatus(ctx, models.MembershipScope{}, ""); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("empty scope err = %v, want bad request", err)
	}
	if _, err := f.svc.ListByStatus(ctx, models.MembershipScope{ClubID: uuid.New().String()}, ""); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("unknown club err = %v, want not found", err)
	}
}

func TestSummarize(t *testing.T) {
	entries := []models.MembershipEntry{
		{Membership: models.Membership{Status: models.StatusApproved}},
		{Membership: models.Membership{Status: models.StatusPending}},
		{Membership: models.Membership{Status: models.StatusPending}},
		{Membership: models.Membership{Status: models.StatusRejected}},
	}

	got := Summarize(slices.Values(entries))
	want := models.MembershipCounts{Approved: 1, Pending: 2, Rejected: 1, Total: 4}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}
