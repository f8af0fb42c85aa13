package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/kaan/traintrack/internal/app/controllers"
	appMigrations "github.com/kaan/traintrack/internal/app/migrations"
	appRepos "github.com/kaan/traintrack/internal/app/repositories"
	appRoutes "github.com/kaan/traintrack/internal/app/routes"
	appServices "github.com/kaan/traintrack/internal/app/services"
	"github.com/kaan/traintrack/internal/config"
	"github.com/kaan/traintrack/internal/db"
	appMiddleware "github.com/kaan/traintrack/internal/middleware"
	pkgAuth "github.com/kaan/traintrack/internal/pkg/auth"
	"github.com/kaan/traintrack/internal/pkg/helpers"
	"github.com/kaan/traintrack/internal/pkg/logger"
	"github.com/kaan/traintrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	ProjectService        appServices.ProjectService
	ParticipantService    appServices.ParticipantService
	GroupService          appServices.GroupService
	EventService          appServices.EventService
	AttendanceService     appServices.AttendanceService
	DailyFocusService     appServices.DailyFocusService
	CurriculumService     appServices.CurriculumService
	ChecklistService      appServices.ChecklistService
	AuthController        *appControllers.AuthController
	ProjectController     *appControllers.ProjectController
	ParticipantController *appControllers.ParticipantController
	GroupController       *appControllers.GroupController
	EventController       *appControllers.EventController
	CurriculumController  *appControllers.CurriculumController
	ChecklistController   *appControllers.ChecklistController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations applied")

	// Seed failures are logged but do not block startup
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)

	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.EventRepository,
		deps.Repos.GroupRepository,
		deps.Repos.CurriculumRepository,
	)

	deps.ProjectService = appServices.NewProjectService(
		deps.Repos.ProjectRepository,
		deps.Repos.EventRepository,
		deps.Repos.GroupRepository,
		deps.AttendanceService,
	)
	deps.ParticipantService = appServices.NewParticipantService(
		deps.Repos.ParticipantRepository,
		deps.Repos.ProjectRepository,
	)
	deps.GroupService = appServices.NewGroupService(
		deps.Repos.GroupRepository,
		deps.Repos.ProjectRepository,
		deps.Repos.ParticipantRepository,
	)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.ProjectRepository,
		deps.Repos.CurriculumRepository,
	)
	deps.DailyFocusService = appServices.NewDailyFocusService(
		deps.Repos.DailyFocusRepository,
		deps.Repos.ProjectRepository,
	)
	deps.CurriculumService = appServices.NewCurriculumService(deps.Repos.CurriculumRepository)
	deps.ChecklistService = appServices.NewChecklistService(
		deps.Repos.ChecklistRepository,
		deps.Repos.ProjectRepository,
		deps.Repos.ParticipantRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ProjectController = appControllers.NewProjectController(deps.ProjectService, deps.DailyFocusService)
	deps.ParticipantController = appControllers.NewParticipantController(deps.ParticipantService)
	deps.GroupController = appControllers.NewGroupController(deps.GroupService, deps.AttendanceService)
	deps.EventController = appControllers.NewEventController(deps.EventService, deps.AttendanceService)
	deps.CurriculumController = appControllers.NewCurriculumController(deps.CurriculumService)
	deps.ChecklistController = appControllers.NewChecklistController(deps.ChecklistService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProjectController,
		deps.ParticipantController,
		deps.GroupController,
		deps.EventController,
		deps.CurriculumController,
		deps.ChecklistController,
		deps.AuthMiddleware,
	)

	return router
}
