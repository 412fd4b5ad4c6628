package repositories

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/clubhub/internal/app/migrations"
	"github.com/yigit/clubhub/internal/db"
	"github.com/yigit/clubhub/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Live backends are opt-in; without these variables their subtests are skipped.
const (
	postgresDSNEnv = "CLUBHUB_TEST_POSTGRES_DSN"
	mongoURIEnv    = "CLUBHUB_TEST_MONGO_URI"
)

// backend opens an empty set of repositories for one test
type backend struct {
	name string
	open func(t *testing.T) *Repositories
}

func backends() []backend {
	return []backend{
		{name: "memory", open: func(*testing.T) *Repositories { return NewMemoryRepositories() }},
		{name: "postgres", open: openPostgres},
		{name: "mongo", open: openMongo},
	}
}

// forEachBackend runs fn once per backend in its own subtest
func forEachBackend(t *testing.T, fn func(t *testing.T, repos *Repositories)) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.open(t))
		})
	}
}

func openPostgres(t *testing.T) *Repositories {
	t.Helper()
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", postgresDSNEnv)
	}

	if err := migrations.NewMigrator(dsn, logger.Nop()).Up(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE announcements, events, club_memberships, clubs, users CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return NewPostgresRepositories(&db.PostgresDB{Pool: pool})
}

func openMongo(t *testing.T) *Repositories {
	t.Helper()
	uri := os.Getenv(mongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set", mongoURIEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}

	// One throwaway database per test
	name := "clubhub_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	database := client.Database(name)
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	if err := EnsureMongoIndexes(ctx, database); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return NewMongoRepositories(database)
}
