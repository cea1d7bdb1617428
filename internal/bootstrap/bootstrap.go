package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/aravind/rollbook/internal/app/controllers"
	appMigrations "github.com/aravind/rollbook/internal/app/migrations"
	appRepos "github.com/aravind/rollbook/internal/app/repositories"
	appRoutes "github.com/aravind/rollbook/internal/app/routes"
	appServices "github.com/aravind/rollbook/internal/app/services"
	"github.com/aravind/rollbook/internal/cache"
	"github.com/aravind/rollbook/internal/config"
	"github.com/aravind/rollbook/internal/db"
	"github.com/aravind/rollbook/internal/metrics"
	appMiddleware "github.com/aravind/rollbook/internal/middleware"
	"github.com/aravind/rollbook/internal/pkg/helpers"
	"github.com/aravind/rollbook/internal/pkg/logger"
	"github.com/aravind/rollbook/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService        *appServices.CourseService
	StudentService       *appServices.StudentService
	AttendanceService    *appServices.AttendanceService
	StatsService         *appServices.StatsService
	CourseController     *appControllers.CourseController
	StudentController    *appControllers.StudentController
	AttendanceController *appControllers.AttendanceController
	StatsController      *appControllers.StatsController
	Repos                *appRepos.Repositories
	Cache                *cache.Cache
	Logger               zerolog.Logger
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Demo {
		if err := seed.CreateDemoData(context.Background(), database, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	// Stats cache is optional; everything works without Redis.
	var statsCache appServices.StatsCache
	if cfg.Redis.Enabled {
		deps.Cache = cache.New(cfg.Redis.Addr, helpers.ParseDuration(cfg.Redis.StatsTTL, 30*time.Second))
		statsCache = deps.Cache
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if !deps.Cache.Healthy(ctx) {
			lgr.Warn().Str("addr", cfg.Redis.Addr).Msg("Redis not reachable, statistics cache will miss until it recovers")
		}
	}

	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.CourseRepository, statsCache)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.CourseRepository,
		deps.Repos.StudentRepository,
		deps.Repos.AttendanceRepository,
		statsCache,
		cfg.Attendance.AllowEmptySessions,
	)
	deps.StatsService = appServices.NewStatsService(
		deps.Repos.CourseRepository,
		deps.Repos.StudentRepository,
		deps.Repos.AttendanceRepository,
		statsCache,
		cfg.Attendance.LowAttendanceThreshold,
	)

	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.StatsController = appControllers.NewStatsController(deps.StatsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, database *db.PostgresDB, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS())
	router.Use(metrics.GinMiddleware())
	if cfg.RateLimit.PerMinute > 0 {
		router.Use(appMiddleware.NewTokenBucket(cfg.RateLimit.PerMinute, cfg.RateLimit.PerMinute).GinMiddleware())
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbHealthy := database.Pool.Ping(ctx) == nil
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{"status": "ok", "db": dbHealthy}
		if deps.Cache != nil {
			body["redis"] = deps.Cache.Healthy(ctx)
		}
		c.JSON(status, body)
	})

	appRoutes.SetupRouter(router,
		deps.CourseController,
		deps.StudentController,
		deps.AttendanceController,
		deps.StatsController,
	)

	return router
}
