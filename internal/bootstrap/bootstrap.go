package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/coursesched/internal/app/controllers"
	appMigrations "github.com/yigit/coursesched/internal/app/migrations"
	appRepos "github.com/yigit/coursesched/internal/app/repositories"
	"github.com/yigit/coursesched/internal/app/repositories/memory"
	appRoutes "github.com/yigit/coursesched/internal/app/routes"
	"github.com/yigit/coursesched/internal/app/scheduling"
	appServices "github.com/yigit/coursesched/internal/app/services"
	"github.com/yigit/coursesched/internal/config"
	"github.com/yigit/coursesched/internal/db"
	appMiddleware "github.com/yigit/coursesched/internal/middleware"
	"github.com/yigit/coursesched/internal/pkg/helpers"
	"github.com/yigit/coursesched/internal/pkg/logger"
	"github.com/yigit/coursesched/internal/pkg/websocket"
	"github.com/yigit/coursesched/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Engine      *scheduling.Engine
	Services    *appServices.Services
	Hub         *websocket.Hub
	Controllers appRoutes.Controllers
	Logger      zerolog.Logger

	stopHub context.CancelFunc
}

// Close stops the calendar hub and disconnects its subscribers
func (d *Dependencies) Close() {
	if d.stopHub != nil {
		d.stopHub()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.Path()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).
		Str("driver", cfg.Database.Driver).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store. For postgres it connects and
// applies pending migrations; the returned pool is nil for the memory driver.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *pgxpool.Pool, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory store, data is lost on restart")
		return memory.NewRepositories(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	dbPool, err := db.Connect(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := appMigrations.NewMigrator(dbPool, lgr).Up(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewRepositories(dbPool, cfg.Scheduling.LockKeyPrefix), dbPool, nil
}

// BuildDependencies initializes the engine, the calendar hub, services and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.Engine = scheduling.NewEngine(repos.Store, lgr.With().Str("component", "scheduling").Logger(),
		scheduling.WithAdmissionTimeout(cfg.AdmissionTimeout()))

	hubLogger := lgr.With().Str("component", "calendar").Logger()
	deps.Hub = websocket.NewHub(hubLogger)
	hubCtx, stop := context.WithCancel(context.Background())
	deps.stopHub = stop
	go deps.Hub.Run(hubCtx)

	deps.Services = appServices.NewServices(appServices.Deps{
		Repos:  repos,
		Engine: deps.Engine,
		Events: deps.Hub,
		Clock:  helpers.Today,
		Logger: lgr,
	})

	if cfg.Seed.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, deps.Services, helpers.Today(), lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	deps.Controllers = appRoutes.Controllers{
		Courses:   appControllers.NewCourseController(deps.Services.Courses),
		Sessions:  appControllers.NewSessionController(deps.Services.Sessions),
		Rooms:     appControllers.NewRoomController(deps.Services.Rooms),
		Lecturers: appControllers.NewLecturerController(deps.Services.Lecturers),
		Students:  appControllers.NewStudentController(deps.Services.Students),
		Calendar:  websocket.NewHandler(deps.Hub, hubLogger),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, dbPool *pgxpool.Pool, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(lgr))

	var health appRoutes.HealthCheck
	if dbPool != nil {
		health = dbPool.Ping
	}

	appRoutes.SetupRouter(router, deps.Controllers, health)

	return router
}
