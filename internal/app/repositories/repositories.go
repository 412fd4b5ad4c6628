package repositories

import (
	"context"

	"github.com/yigit/clubhub/internal/app/models"
	"github.com/yigit/clubhub/internal/db"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClubRepository stores clubs together with their embedded memberships.
// Every membership mutation is atomic with respect to its club.
type ClubRepository interface {
	CreateClub(ctx context.Context, club *models.Club) error
	GetClub(ctx context.Context, clubID string) (*models.Club, error)
	UpdateClub(ctx context.Context, clubID string, update models.ClubUpdate) (*models.Club, error)
	// DeleteClub removes the club with its memberships, events and announcements.
	DeleteClub(ctx context.Context, clubID string) error
	// ListClubs returns one page of clubs, newest first, and the total match count.
	ListClubs(ctx context.Context, filter models.ClubFilter) ([]*models.Club, int64, error)

	FindClubsByAdmin(ctx context.Context, adminID string) ([]*models.Club, error)
	// FindClubsByStudentStatus returns the clubs holding a membership of the
	// student in the given status; an empty status matches any.
	FindClubsByStudentStatus(ctx context.Context, studentID string, status models.MembershipStatus) ([]*models.Club, error)

	// AppendMembership adds m to the club unless the student already holds an
	// active membership there (apperrors.ErrDuplicateMembership). A rejected
	// record for the same student is replaced in the same step.
	AppendMembership(ctx context.Context, clubID string, m models.Membership) error
	UpdateMembershipStatus(ctx context.Context, clubID, membershipID string, status models.MembershipStatus) (*models.Membership, error)
	// RemoveMembership deletes the student's membership and returns it.
	RemoveMembership(ctx context.Context, clubID, studentID string) (*models.Membership, error)
}

// UserRepository stores accounts
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUsersByIDs returns the users that exist, keyed by id.
	FindUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// ActivityRepository stores club events and announcements
type ActivityRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	// ListEvents returns the events of the clubs ordered by date ascending.
	ListEvents(ctx context.Context, clubIDs []string) ([]*models.Event, error)
	// ListAnnouncements returns the announcements of the clubs, newest first.
	ListAnnouncements(ctx context.Context, clubIDs []string) ([]*models.Announcement, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Clubs    ClubRepository
	Users    UserRepository
	Activity ActivityRepository
}

// NewPostgresRepositories initializes the relational repositories
func NewPostgresRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{
		Clubs:    NewClubRepository(pg),
		Users:    NewUserRepository(pg.Pool),
		Activity: NewActivityRepository(pg.Pool),
	}
}

// NewMongoRepositories initializes the document repositories
func NewMongoRepositories(database *mongo.Database) *Repositories {
	return &Repositories{
		Clubs:    NewMongoClubRepository(database),
		Users:    NewMongoUserRepository(database),
		Activity: NewMongoActivityRepository(database),
	}
}

// NewMemoryRepositories initializes process-local repositories sharing one dataset
func NewMemoryRepositories() *Repositories {
	store := NewMemoryStore()
	return &Repositories{
		Clubs:    store,
		Users:    store,
		Activity: store,
	}
}

var (
	_ ClubRepository     = (*PostgresClubRepository)(nil)
	_ ClubRepository     = (*MongoClubRepository)(nil)
	_ ClubRepository     = (*MemoryStore)(nil)
	_ UserRepository     = (*PostgresUserRepository)(nil)
	_ UserRepository     = (*MongoUserRepository)(nil)
	_ UserRepository     = (*MemoryStore)(nil)
	_ ActivityRepository = (*PostgresActivityRepository)(nil)
	_ ActivityRepository = (*MongoActivityRepository)(nil)
	_ ActivityRepository = (*MemoryStore)(nil)
)
