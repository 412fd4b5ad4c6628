package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/clubhub/internal/app/auth"
	appControllers "github.com/yigit/clubhub/internal/app/controllers"
	appMigrations "github.com/yigit/clubhub/internal/app/migrations"
	"github.com/yigit/clubhub/internal/app/policy"
	appRepos "github.com/yigit/clubhub/internal/app/repositories"
	appRoutes "github.com/yigit/clubhub/internal/app/routes"
	appServices "github.com/yigit/clubhub/internal/app/services"
	"github.com/yigit/clubhub/internal/config"
	"github.com/yigit/clubhub/internal/db"
	appMiddleware "github.com/yigit/clubhub/internal/middleware"
	pkgAuth "github.com/yigit/clubhub/internal/pkg/auth"
	"github.com/yigit/clubhub/internal/pkg/helpers"
	"github.com/yigit/clubhub/internal/pkg/logger"
	"github.com/yigit/clubhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	AuthzService      *appAuth.AuthorizationService
	AuthService       *appServices.AuthService
	ClubService       appServices.ClubService
	MembershipService appServices.MembershipService
	ActivityService   appServices.ActivityService
	DashboardService  appServices.DashboardService
	MembershipPolicy  *policy.MembershipPolicy
	ClubPolicy        *policy.ClubPolicy
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Controllers       appRoutes.Controllers
	Logger            zerolog.Logger
}

// Store is an opened persistence backend
type Store struct {
	Driver string
	Repos  *appRepos.Repositories
	Health appControllers.HealthChecker
	Close  func(ctx context.Context) error
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Format: logger.Format(cfg.Logging.Format),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured backend and prepares its schema.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return setupPostgres(cfg, lgr)
	case config.DriverMongo:
		return setupMongo(ctx, cfg, lgr)
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		return &Store{
			Driver: config.DriverMemory,
			Repos:  appRepos.NewMemoryRepositories(),
			Close:  func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func setupPostgres(cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(cfg.GetPostgresConnectionString(), lgr)
	if err := migrator.Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	return &Store{
		Driver: config.DriverPostgres,
		Repos:  appRepos.NewPostgresRepositories(database),
		Health: database.Pool.Ping,
		Close: func(context.Context) error {
			database.Close()
			return nil
		},
	}, nil
}

func setupMongo(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Msg("Establishing MongoDB connection...")
	mongoDB, err := db.NewMongoDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to MongoDB")
		return nil, err
	}

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := appRepos.EnsureMongoIndexes(indexCtx, mongoDB.Database); err != nil {
		_ = mongoDB.Close(context.Background())
		return nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
	}
	lgr.Info().Msg("MongoDB indexes ensured.")

	return &Store{
		Driver: config.DriverMongo,
		Repos:  appRepos.NewMongoRepositories(mongoDB.Database),
		Health: func(ctx context.Context) error { return mongoDB.Client.Ping(ctx, nil) },
		Close:  mongoDB.Close,
	}, nil
}

// SeedIfEnabled loads the demo data when the server is configured to
func SeedIfEnabled(ctx context.Context, cfg *config.Config, store *Store, lgr zerolog.Logger) {
	if !cfg.Server.Seed {
		return
	}
	if err := seed.CreateDefaultData(ctx, store.Repos, lgr); err != nil {
		// Seeding is best effort
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes application services, policies and controllers.
func BuildDependencies(cfg *config.Config, store *Store, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, Repos: store.Repos}
	repos := store.Repos

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 7*24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(repos.Clubs)

	deps.AuthService = appServices.NewAuthService(repos.Users, deps.JWTService, logger.WithComponent("auth"))
	deps.MembershipService = appServices.NewMembershipService(repos.Clubs, logger.WithComponent("membership"))
	deps.ClubService = appServices.NewClubService(repos.Clubs, repos.Users, repos.Activity, logger.WithComponent("club"))
	deps.ActivityService = appServices.NewActivityService(repos.Clubs, repos.Activity, logger.WithComponent("activity"))
	deps.DashboardService = appServices.NewDashboardService(repos.Clubs, repos.Activity, deps.MembershipService)

	deps.MembershipPolicy = policy.NewMembershipPolicy(deps.AuthzService, deps.MembershipService)
	deps.ClubPolicy = policy.NewClubPolicy(deps.AuthzService, deps.ClubService, deps.ActivityService, deps.DashboardService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, lgr),
		Club:       appControllers.NewClubController(deps.ClubService, deps.MembershipPolicy, lgr),
		Membership: appControllers.NewMembershipController(deps.MembershipPolicy),
		Admin:      appControllers.NewAdminController(deps.ClubPolicy),
		Health:     appControllers.NewHealthController(store.Driver, store.Health),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	// Request bodies are strict command structs
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
