package app

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"
	"profile-service/internal/config"
	"profile-service/internal/db"
	profiledomain "profile-service/internal/domain/profile"
	"profile-service/internal/repository/inmemory"
	profilerepo "profile-service/internal/repository/profile"
	"profile-service/internal/storage/upload"
	"profile-service/internal/transport/httpserver"
	"profile-service/internal/transport/httpserver/handler"
	"profile-service/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	application := &App{cfg: cfg}
	repo, err := application.profileRepository(ctx, log)
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	log.Info("app: initializing upload storage", "backend", cfg.Upload.Backend)
	sink, err := upload.New(ctx, cfg.Upload)
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	profiles := profiledomain.NewService(repo, sink)
	handlers := handler.New(profiles, sink, cfg.MaxMultipartMemory, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, log)
	application.httpServer = httpserver.New(cfg, router)

	return application, nil
}

func (a *App) profileRepository(ctx context.Context, log logger.Logger) (profiledomain.Repository, error) {
	if a.cfg.DB.Driver == config.DBDriverMemory {
		log.Warn("app: using in-memory profile store, data is lost on restart")
		return inmemory.NewProfileRepository(), nil
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(a.cfg.DB, log)
	if err != nil {
		return nil, err
	}
	a.db = dbConn

	if a.cfg.DB.AutoMigrate {
		if err := db.Migrate(ctx, dbConn, log); err != nil {
			return nil, err
		}
	}

	return profilerepo.NewPostgres(dbConn), nil
}

// Migrate applies the schema and closes the connection. It is a no-op for the
// in-memory driver.
func Migrate(ctx context.Context, log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	if cfg.DB.Driver == config.DBDriverMemory {
		log.Warn("app: nothing to migrate for the in-memory profile store")
		return nil
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	application := &App{cfg: cfg, db: dbConn}
	defer application.Close()

	return db.Migrate(ctx, dbConn, log)
}

func (a *App) ShutdownTimeout() time.Duration {
	if a.cfg.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return a.cfg.ShutdownTimeout
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
