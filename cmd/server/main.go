package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cardreg.backend/internal/config"
	"cardreg.backend/internal/infrastructure/content"
	"cardreg.backend/internal/infrastructure/models"
	"cardreg.backend/internal/infrastructure/repositories"
	"cardreg.backend/internal/interfaces/http/handlers"
	"cardreg.backend/internal/metrics"
	"cardreg.backend/internal/usecases"
	"cardreg.backend/pkg/logger"
	"cardreg.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newWorkflowStore = redis.NewWorkflowStore
	runServer        = serveGracefully
	getStdDB         = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	notifyShutdown   = func(ch chan<- os.Signal) {
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	}
	shutdownTimeout = 10 * time.Second
)

// serveGracefully runs the HTTP server until a fatal serve error or a
// termination signal. On SIGINT/SIGTERM it drains in-flight requests before
// returning, so a wizard stage submission is never cut off mid-write.
func serveGracefully(r *gin.Engine, port string) error {
	srv := &http.Server{Addr: ":" + port, Handler: r}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()

	quit := make(chan os.Signal, 1)
	notifyShutdown(quit)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if err := models.SeedFormControls(db); err != nil {
			return fmt.Errorf("failed to seed form controls: %w", err)
		}
	}

	workflowStore, err := newWorkflowStore(cfg.Session.EncryptionKey, cfg.Session.TTL)
	if err != nil {
		return fmt.Errorf("failed to initialize workflow store: %w", err)
	}

	contentStore, err := buildContentStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize content store: %w", err)
	}

	m := metrics.New()

	userRepo := repositories.NewUserRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	formControlRepo := repositories.NewFormControlRepository(db)

	registrationUsecase := usecases.NewRegistrationUsecase(
		userRepo, documentRepo, formControlRepo, workflowStore, contentStore, m)

	r := buildRouter(cfg, m, routeDeps{
		registrationHandler: handlers.NewRegistrationHandler(registrationUsecase),
		documentHandler:     handlers.NewDocumentHandler(registrationUsecase),
		confirmationHandler: handlers.NewConfirmationHandler(registrationUsecase),
		optionsHandler:      handlers.NewOptionsHandler(registrationUsecase),
	})

	log.Printf("Card onboarding backend starting on port %s", cfg.Server.Port)
	log.Printf("Wizard: http://localhost:%s/register", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func buildContentStore(cfg *config.Config) (content.Store, error) {
	if cfg.Uploads.Driver == "s3" {
		return content.NewS3Store(context.Background(),
			cfg.Uploads.S3Region, cfg.Uploads.S3Bucket, cfg.Uploads.S3Prefix)
	}
	return content.NewLocalStore(cfg.Uploads.LocalDir)
}
