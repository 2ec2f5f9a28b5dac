package cmd

import (
	"context"
	"fmt"
	"time"

	"professor-registry/internal/api/handlers"
	"professor-registry/internal/config"
	"professor-registry/internal/domain/professor"
	"professor-registry/internal/infrastructure/cache"
	"professor-registry/internal/infrastructure/database"
	"professor-registry/internal/infrastructure/repository"
	"professor-registry/internal/service"
	"professor-registry/pkg/logger"

	"gorm.io/gorm"
)

// application holds the wired dependencies shared by the server and console commands
type application struct {
	db      *gorm.DB
	cache   *cache.RedisCache
	service professor.Service
	checks  map[string]handlers.HealthCheckFunc
}

func databaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.Username,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		LogQueries:      cfg.Database.LogQueries || verbose,
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewConnection(databaseConfig(cfg))
	if err != nil {
		return nil, err
	}

	if err := database.HealthCheck(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	return db, nil
}

// newApplication wires repositories and the service. With inMemory set no database is opened.
func newApplication(cfg *config.Config, inMemory bool) (*application, error) {
	log := logger.GetLogger()
	app := &application{checks: map[string]handlers.HealthCheckFunc{}}

	var professors professor.Repository
	var events professor.EventRepository

	if inMemory {
		store := repository.NewMockProfessorRepository()
		if err := store.SeedSampleData(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to seed in-memory store: %w", err)
		}
		professors = store
		events = repository.NewMockProfessorEventRepository(store)
		logger.Info("Using in-memory professor repository")
	} else {
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		app.db = db

		sqlxDB, err := database.NewSqlx(db)
		if err != nil {
			app.Close()
			return nil, err
		}

		professors = repository.NewProfessorRepository(db, log)
		events = repository.NewProfessorEventRepository(sqlxDB, log)
		app.checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	if cfg.Cache.Enabled {
		app.cache = cache.NewRedisCacheWithConfig(&cfg.Cache)
		ttl := time.Duration(cfg.Cache.TTL) * time.Second
		professors = repository.NewCachedProfessorRepository(professors, app.cache, ttl, log)
		app.checks["cache"] = app.cache.Health
		logger.Info("Professor cache enabled on %s:%d", cfg.Cache.Host, cfg.Cache.Port)
	}

	app.service = service.NewProfessorService(professors, events, log)
	return app, nil
}

func (a *application) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Warn("Failed to close cache: %v", err)
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			logger.Warn("Failed to close database: %v", err)
		}
	}
}
