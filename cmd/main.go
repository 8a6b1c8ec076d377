package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/photoshare/backend/internal/handlers"
	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/middlewares"
	"github.com/photoshare/backend/internal/repositories"
	"github.com/photoshare/backend/internal/services"
	"github.com/photoshare/backend/internal/sessions"
	"github.com/photoshare/backend/internal/storage"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

type config struct {
	appHost  string
	appPort  string
	logLevel string

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int
	migrationsDir  string

	redisHost     string
	redisPort     int
	redisDB       int
	redisPassword string

	sessionExpSecond int

	storageBackend string // "disk" or "minio"
	storageDir     string
	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
	minioBucket    string
	minioUseSSL    bool

	kafkaBrokers string
	kafkaTopic   string
}

// @title photoshare API
// @version 1.0.0
// @description Backend for a small photo-sharing application
// @host localhost:3000
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, storage, and Kafka configuration.
func parseConfig(path string) (config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var cfg config
	var err error

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "3000")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "photoshare")
	cfg.migrationsDir = getEnv("POSTGRES_MIGRATIONS_DIR", "migrations")
	if cfg.pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return cfg, err
	}
	if cfg.pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return cfg, err
	}
	if cfg.pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return cfg, err
	}

	// Redis config (session store)
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return cfg, err
	}
	if cfg.redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return cfg, err
	}
	if cfg.sessionExpSecond, err = strconv.Atoi(getEnv("SESSION_EXP_SECOND", "3600")); err != nil {
		return cfg, err
	}

	// Blob storage config
	cfg.storageBackend = getEnv("STORAGE_BACKEND", "disk")
	cfg.storageDir = getEnv("STORAGE_DIR", "images")
	cfg.minioEndpoint = getEnv("MINIO_ENDPOINT", "")
	cfg.minioAccessKey = getEnv("MINIO_ACCESS_KEY", "")
	cfg.minioSecretKey = getEnv("MINIO_SECRET_KEY", "")
	cfg.minioBucket = getEnv("MINIO_BUCKET", "photos")
	cfg.minioUseSSL = getEnv("MINIO_USE_SSL", "false") == "true"

	// Kafka config (optional activity events)
	cfg.kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "photoshare-activity")

	return cfg, nil
}

// run initializes the logger, database, Redis, blob storage, and HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", cfg.pgHost, cfg.pgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Apply migrations
	if err := applyMigrations(cfg.migrationsDir, dsn); err != nil {
		logger.Log.Errorw("migrations failed", "error", err)
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	sessionStore := sessions.New(rdb, time.Duration(cfg.sessionExpSecond)*time.Second)

	// Blob storage
	var blobs storage.ObjectStorage
	switch cfg.storageBackend {
	case "minio":
		blobs, err = storage.NewMinioStorage(ctx, cfg.minioEndpoint, cfg.minioAccessKey,
			cfg.minioSecretKey, cfg.minioBucket, cfg.minioUseSSL)
	default:
		blobs, err = storage.NewDiskStorage(cfg.storageDir)
	}
	if err != nil {
		logger.Log.Errorw("blob storage init failed", "backend", cfg.storageBackend, "error", err)
		return err
	}

	// Optional Kafka writer for activity events
	var activityWriter services.KafkaWriter
	if cfg.kafkaBrokers != "" {
		kw := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(cfg.kafkaBrokers, ",")...),
			Topic:    cfg.kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer kw.Close()
		activityWriter = kw
	}

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	photoReadRepo := repositories.NewPhotoReadRepository(db)
	photoWriteRepo := repositories.NewPhotoWriteRepository(db)
	statsRepo := repositories.NewStatsReadRepository(db)
	schemaInfoRepo := repositories.NewSchemaInfoReadRepository(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, sessionStore)
	userService := services.NewUserService(userReadRepo)
	photoService := services.NewPhotoService(photoReadRepo, photoWriteRepo, userReadRepo, blobs, activityWriter)
	statsService := services.NewStatsService(statsRepo, schemaInfoRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Get("/test/info", handlers.NewInfoHandler(statsService))
	r.Get("/test/counts", handlers.NewCountsHandler(statsService))

	r.Post("/user", handlers.NewRegisterHandler(authService, sessionStore))
	r.Post("/admin/login", handlers.NewLoginHandler(authService, sessionStore))
	r.Post("/admin/logout", handlers.NewLogoutHandler(authService, sessionStore))

	r.Get("/user/list", handlers.NewUserListHandler(userService))
	r.Get("/user/{id}", handlers.NewUserGetHandler(userService))
	r.Get("/photosOfUser/{id}", handlers.NewPhotosOfUserHandler(photoService))

	r.Post("/photos/new", handlers.NewPhotoUploadHandler(photoService, sessionStore))
	r.Post("/commentsOfPhoto/{photo_id}", handlers.NewCommentHandler(photoService, sessionStore))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// applyMigrations runs all pending up migrations from the given directory.
func applyMigrations(dir, dsn string) error {
	migrator, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate up failed: %w", err)
	}
	return nil
}
