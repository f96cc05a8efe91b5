package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"resume-builder/internal/config"
	"resume-builder/internal/database"
	"resume-builder/internal/database/migration"
	dbpostgres "resume-builder/internal/database/postgres"
	"resume-builder/internal/infrastructure/cache"
	"resume-builder/internal/pkg/jwt"
	"resume-builder/internal/repository"
	"resume-builder/internal/usecase"
	"resume-builder/internal/ws"
	"resume-builder/migrations"
)

// Container owns the process-wide dependencies shared by the server and the CLIs.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	JWT   *jwt.HMACService
	Hub   *ws.Hub

	Resumes     usecase.ResumeUsecase
	Suggestions usecase.SuggestionUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.App.MigrationsEnabled {
		runner := migration.Runner{FS: migrations.FS, Logger: logger}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	redis := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	resumeRepo := repository.NewPostgresResumeRepository(db)
	sectionRepo := repository.NewPostgresSectionRepository(db)
	suggestionRepo := repository.NewPostgresSuggestionRepository(db)

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redis,
		JWT:    jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiresIn),
		Hub:    hub,
	}
	c.Resumes = usecase.NewResumeUsecase(resumeRepo, sectionRepo, redis, logger)
	c.Suggestions = usecase.NewSuggestionUsecase(usecase.SuggestionsDeps{
		Resumes:     resumeRepo,
		Sections:    sectionRepo,
		Suggestions: suggestionRepo,
		Cache:       redis,
		CacheTTL:    cfg.Redis.TTL,
		Notifier:    hub,
		Logger:      logger,
	})
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
