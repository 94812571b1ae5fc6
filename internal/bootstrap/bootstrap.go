package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/scholarmatch/internal/app/controllers"
	"github.com/yigit/scholarmatch/internal/app/engine"
	appMigrations "github.com/yigit/scholarmatch/internal/app/migrations"
	appRepos "github.com/yigit/scholarmatch/internal/app/repositories"
	appRoutes "github.com/yigit/scholarmatch/internal/app/routes"
	appServices "github.com/yigit/scholarmatch/internal/app/services"
	"github.com/yigit/scholarmatch/internal/config"
	"github.com/yigit/scholarmatch/internal/db"
	appMiddleware "github.com/yigit/scholarmatch/internal/middleware"
	pkgAuth "github.com/yigit/scholarmatch/internal/pkg/auth"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
	"github.com/yigit/scholarmatch/internal/seed"
	"github.com/yigit/scholarmatch/internal/storage/sqlite"
	schema "github.com/yigit/scholarmatch/migrations"
)

// DefaultConfigPath is where the server and CLI look for their YAML configuration
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// StartupTimeout bounds storage setup and seeding.
const StartupTimeout = 30 * time.Second

// Dependencies holds all the application dependencies
type Dependencies struct {
	RecommendationService appServices.RecommendationService
	ProfileService        appServices.ProfileService
	ScholarshipService    appServices.ScholarshipService
	AuthService           *appServices.AuthService
	Controllers           appRoutes.Controllers
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
}

// Storage is an opened storage backend
type Storage struct {
	Repos *appRepos.Repositories
	// Close releases the backend's connections.
	Close func()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr, err := logger.Configure(logger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: "scholarmatch",
		Output:  os.Stderr,
	})
	if err != nil {
		lgr.Warn().Err(err).Msg("Logging level not recognised")
	}

	lgr.Info().Str("logLevel", zerolog.GlobalLevel().String()).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the backend selected by database.driver and brings its schema up to date.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return setupSQLite(cfg, lgr)
	case config.DriverPostgres:
		return setupPostgres(ctx, cfg, lgr)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func setupSQLite(cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	path := cfg.Database.SQLitePath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	lgr.Info().Str("path", path).Msg("Opening SQLite database...")
	store, err := sqlite.Open(path)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open SQLite database")
		return nil, err
	}
	lgr.Info().Msg("SQLite database ready.")

	return &Storage{
		Repos: appRepos.FromStore(store),
		Close: func() {
			if err := store.Close(); err != nil {
				lgr.Error().Err(err).Msg("Failed to close SQLite database")
			}
		},
	}, nil
}

func setupPostgres(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationFS, err := migrationSource(cfg.Database.MigrationsDir)
	if err != nil {
		database.Close()
		lgr.Error().Err(err).Str("path", cfg.Database.MigrationsDir).Msg("Migrations directory not found")
		return nil, err
	}

	migrator := appMigrations.NewMigrator(dbPool)
	applied, err := migrator.Apply(ctx, migrationFS)
	if err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")

	return &Storage{
		Repos: appRepos.NewRepositories(dbPool),
		Close: database.Close,
	}, nil
}

// migrationSource returns the embedded schema, or dir when one is configured
func migrationSource(dir string) (fs.FS, error) {
	if dir == "" {
		return schema.FS, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}
	return os.DirFS(dir), nil
}

// SeedDefaultData creates the default catalog and admin account when seeding is enabled.
// Failures are logged and do not stop startup.
func SeedDefaultData(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) {
	if !cfg.Seed.Enabled {
		return
	}
	opts := seed.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	}
	if err := seed.CreateDefaultData(ctx, repos, opts, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// NewRecommendationService builds the recommendation pipeline from configuration.
func NewRecommendationService(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) appServices.RecommendationService {
	builder := engine.NewDefaultBuilder(engine.BuilderOptions{
		ExcludeExpired: cfg.Recommendation.ExcludeExpired,
		FallbackLimit:  cfg.Recommendation.FallbackLimit,
	})
	return appServices.NewRecommendationService(
		repos.Profiles,
		repos.Scholarships,
		repos.Recommendations,
		builder,
		cfg.Recommendation.ListLimit,
		lgr.With().Str("component", "recommendations").Logger(),
	)
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("JWT secret is required (set JWT_SECRET)")
	}

	deps := &Dependencies{Logger: lgr, Repos: repos}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.JWT.AccessTokenExpiration,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.RecommendationService = NewRecommendationService(cfg, repos, lgr)
	deps.ProfileService = appServices.NewProfileService(repos.Profiles, deps.RecommendationService, lgr)
	deps.ScholarshipService = appServices.NewScholarshipService(repos.Scholarships, lgr)
	deps.AuthService = appServices.NewAuthService(repos.Accounts, deps.JWTService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Health:         appControllers.NewHealthController(repos.Health, lgr),
		Auth:           appControllers.NewAuthController(deps.AuthService, lgr),
		Profile:        appControllers.NewProfileController(deps.ProfileService),
		Scholarship:    appControllers.NewScholarshipController(deps.ScholarshipService),
		Recommendation: appControllers.NewRecommendationController(deps.RecommendationService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
