package repositories

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/helpers"
)

// clubEntry pairs a club with the lock that serialises every read and write of it
type clubEntry struct {
	mu      sync.Mutex
	club    *models.Club
	deleted bool
}

// MemoryStore keeps every record in process memory. It implements
// ClubRepository, UserRepository and ActivityRepository over one dataset.
// mu guards the maps; each club's own mutex guards its contents.
type MemoryStore struct {
	mu            sync.RWMutex
	clubs         map[string]*clubEntry
	users         map[string]*models.User
	emails        map[string]string
	events        []*models.Event
	announcements []*models.Announcement
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clubs:  make(map[string]*clubEntry),
		users:  make(map[string]*models.User),
		emails: make(map[string]string),
	}
}

func (s *MemoryStore) entry(clubID string) (*clubEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.clubs[clubID]
	return e, ok
}

func (s *MemoryStore) entries() []*clubEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*clubEntry, 0, len(s.clubs))
	for _, e := range s.clubs {
		out = append(out, e)
	}
	return out
}

// withClub runs fn with the club's lock held; fn may modify the club
func (s *MemoryStore) withClub(clubID string, fn func(c *models.Club) error) error {
	e, ok := s.entry(clubID)
	if !ok {
		return apperrors.ErrClubNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return apperrors.ErrClubNotFound
	}
	return fn(e.club)
}

// snapshots returns copies of every live club accepted by keep
func (s *MemoryStore) snapshots(keep func(c *models.Club) bool) []*models.Club {
	out := make([]*models.Club, 0)
	for _, e := range s.entries() {
		e.mu.Lock()
		if !e.deleted && keep(e.club) {
			out = append(out, e.club.Clone())
		}
		e.mu.Unlock()
	}
	slices.SortFunc(out, func(a, b *models.Club) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

// CreateClub stores a new club
func (s *MemoryStore) CreateClub(_ context.Context, club *models.Club) error {
	c := normalizeClub(club.Clone())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.clubs[c.ID]; exists {
		return apperrors.NewConflictError("club already exists")
	}
	s.clubs[c.ID] = &clubEntry{club: c}
	return nil
}

// GetClub returns a copy of the club
func (s *MemoryStore) GetClub(_ context.Context, clubID string) (*models.Club, error) {
	var out *models.Club
	err := s.withClub(clubID, func(c *models.Club) error {
		out = c.Clone()
		return nil
	})
	return out, err
}

// UpdateClub applies a partial update and returns a copy of the result
func (s *MemoryStore) UpdateClub(_ context.Context, clubID string, update models.ClubUpdate) (*models.Club, error) {
	var out *models.Club
	err := s.withClub(clubID, func(c *models.Club) error {
		if !update.Empty() {
			update.Apply(c)
			c.UpdatedAt = helpers.NowUTC()
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

// DeleteClub removes the club and its activity records
func (s *MemoryStore) DeleteClub(_ context.Context, clubID string) error {
	s.mu.Lock()
	e, ok := s.clubs[clubID]
	if !ok {
		s.mu.Unlock()
		return apperrors.ErrClubNotFound
	}
	delete(s.clubs, clubID)
	s.events = slices.DeleteFunc(s.events, func(ev *models.Event) bool { return ev.Club == clubID })
	s.announcements = slices.DeleteFunc(s.announcements, func(a *models.Announcement) bool { return a.Club == clubID })
	s.mu.Unlock()

	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()
	return nil
}

// ListClubs returns one page of clubs matching the filter, newest first
func (s *MemoryStore) ListClubs(_ context.Context, filter models.ClubFilter) ([]*models.Club, int64, error) {
	search := strings.ToLower(filter.Search)
	all := s.snapshots(func(c *models.Club) bool {
		if filter.Category != "" && c.Category != filter.Category {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			return false
		}
		return true
	})

	start, end := helpers.CalculateSliceIndices(filter.Page, filter.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

// FindClubsByAdmin returns copies of every club the admin owns
func (s *MemoryStore) FindClubsByAdmin(_ context.Context, adminID string) ([]*models.Club, error) {
	return s.snapshots(func(c *models.Club) bool { return c.Admin == adminID }), nil
}

// FindClubsByStudentStatus returns copies of the clubs in which the student holds a membership
func (s *MemoryStore) FindClubsByStudentStatus(_ context.Context, studentID string, status models.MembershipStatus) ([]*models.Club, error) {
	return s.snapshots(func(c *models.Club) bool {
		m, ok := c.MembershipOf(studentID)
		return ok && (status == "" || m.Status == status)
	}), nil
}

// AppendMembership adds m under the club lock
func (s *MemoryStore) AppendMembership(_ context.Context, clubID string, m models.Membership) error {
	return s.withClub(clubID, func(c *models.Club) error {
		if existing, ok := c.MembershipOf(m.Student); ok {
			if existing.Status.Active() {
				return apperrors.ErrDuplicateMembership
			}
			c.Members = slices.DeleteFunc(c.Members, func(x models.Membership) bool { return x.Student == m.Student })
		}
		c.Members = append(c.Members, m)
		c.UpdatedAt = helpers.NowUTC()
		return nil
	})
}

// UpdateMembershipStatus sets the status of one membership under the club lock
func (s *MemoryStore) UpdateMembershipStatus(_ context.Context, clubID, membershipID string, status models.MembershipStatus) (*models.Membership, error) {
	var out *models.Membership
	err := s.withClub(clubID, func(c *models.Club) error {
		for i := range c.Members {
			if c.Members[i].ID == membershipID {
				c.Members[i].Status = status
				c.UpdatedAt = helpers.NowUTC()
				m := c.Members[i]
				out = &m
				return nil
			}
		}
		return apperrors.ErrMembershipNotFound
	})
	return out, err
}

// RemoveMembership deletes the student's membership under the club lock
func (s *MemoryStore) RemoveMembership(_ context.Context, clubID, studentID string) (*models.Membership, error) {
	var out *models.Membership
	err := s.withClub(clubID, func(c *models.Club) error {
		m, ok := c.MembershipOf(studentID)
		if !ok {
			return apperrors.ErrMembershipNotFound
		}
		c.Members = slices.DeleteFunc(c.Members, func(x models.Membership) bool { return x.Student == studentID })
		c.UpdatedAt = helpers.NowUTC()
		out = &m
		return nil
	})
	return out, err
}

// CreateUser stores a new user; emails are unique
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[user.Email]; taken {
		return apperrors.ErrEmailAlreadyExists
	}
	u := *user
	s.users[u.ID] = &u
	s.emails[u.Email] = u.ID
	return nil
}

// FindUserByID returns a copy of the user
func (s *MemoryStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// FindUserByEmail returns a copy of the user with the email
func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.emails[email]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s.FindUserByID(ctx, id)
}

// FindUsersByIDs returns copies of the users that exist
func (s *MemoryStore) FindUsersByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

// CreateEvent stores a new event
func (s *MemoryStore) CreateEvent(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clubs[event.Club]; !ok {
		return apperrors.ErrClubNotFound
	}
	e := *event
	s.events = append(s.events, &e)
	return nil
}

// CreateAnnouncement stores a new announcement
func (s *MemoryStore) CreateAnnouncement(_ context.Context, announcement *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clubs[announcement.Club]; !ok {
		return apperrors.ErrClubNotFound
	}
	a := *announcement
	s.announcements = append(s.announcements, &a)
	return nil
}

// ListEvents returns copies of the clubs' events by date
func (s *MemoryStore) ListEvents(_ context.Context, clubIDs []string) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Event, 0)
	for _, e := range s.events {
		if slices.Contains(clubIDs, e.Club) {
			cp := *e
			out = append(out, &cp)
		}
	}
	slices.SortStableFunc(out, func(a, b *models.Event) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// ListAnnouncements returns copies of the clubs' announcements, newest first
func (s *MemoryStore) ListAnnouncements(_ context.Context, clubIDs []string) ([]*models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Announcement, 0)
	for _, a := range s.announcements {
		if slices.Contains(clubIDs, a.Club) {
			cp := *a
			out = append(out, &cp)
		}
	}
	slices.SortStableFunc(out, func(a, b *models.Announcement) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}
