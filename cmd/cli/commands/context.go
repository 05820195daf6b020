package commands

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/internal/config"
	"github.com/jakechorley/shift-scheduler/pkg/cache"
	"github.com/jakechorley/shift-scheduler/pkg/clients/geminiclient"
	"github.com/jakechorley/shift-scheduler/pkg/clients/watsonxclient"
	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/allocator/generative"
	"github.com/jakechorley/shift-scheduler/pkg/core/services"
	"github.com/jakechorley/shift-scheduler/pkg/db"
	"github.com/jakechorley/shift-scheduler/pkg/postgres"
	"github.com/jakechorley/shift-scheduler/pkg/sqlite"
	"github.com/jakechorley/shift-scheduler/pkg/utils"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg        *config.Config
	Database   db.Database
	Strategies services.Strategies
	Logger     *zap.Logger
	Ctx        context.Context

	// BusinessID is the business every command acts on (--business or the configured one)
	BusinessID string

	redis *redis.Client
}

// Init loads the database and strategies for cfg
func (app *AppContext) Init(cfg *config.Config, businessOverride string) error {
	app.Cfg = cfg
	app.BusinessID = cfg.BusinessID
	if businessOverride != "" {
		app.BusinessID = businessOverride
	}

	app.Logger.Info("Connecting to database", zap.String("driver", cfg.Database.Driver))
	database, err := openDatabase(app.Ctx, cfg.Database)
	if err != nil {
		return err
	}
	app.Database = database
	app.Logger.Debug("Database connected")

	app.Strategies.Deterministic = allocator.NewDeterministicStrategy(cfg.Scheduling.PairsNewWithLead())

	generator, err := app.buildGenerator()
	if err != nil {
		return err
	}
	if generator != nil {
		app.Strategies.Generative = generative.NewStrategy(generator, generative.Config{
			Timeout:     cfg.Generator.Timeout,
			MaxAttempts: cfg.Generator.MaxAttempts,
		}, app.Logger)
	}

	return nil
}

// Close releases the database and cache connections
func (app *AppContext) Close() {
	if app.Database != nil {
		app.Database.Close()
	}
	if app.redis != nil {
		app.redis.Close()
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (db.Database, error) {
	switch cfg.Driver {
	case "postgres":
		database, err := postgres.NewDB(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return database, nil
	case "sqlite":
		database, err := sqlite.NewDB(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return database, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// buildGenerator constructs the configured generator client, wrapped in the Redis cache when one
// is configured. Returns nil when no provider is set.
func (app *AppContext) buildGenerator() (generative.Generator, error) {
	cfg := app.Cfg.Generator

	var generator generative.Generator
	var namespace string
	switch cfg.Provider {
	case "":
		return nil, nil
	case "watsonx":
		app.Logger.Info("Initializing watsonx client", zap.String("model", cfg.Watsonx.ModelID))
		tokenSource := utils.SharedIAMTokenSource(app.Ctx, cfg.Watsonx.IAMURL, cfg.Watsonx.APIKey)
		client, err := watsonxclient.NewClient(watsonxclient.Config{
			URL:       cfg.Watsonx.URL,
			ProjectID: cfg.Watsonx.ProjectID,
			ModelID:   cfg.Watsonx.ModelID,
			Timeout:   cfg.Timeout,
		}, tokenSource, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create watsonx client: %w", err)
		}
		generator = client
		namespace = "watsonx:" + cfg.Watsonx.ModelID
	case "gemini":
		app.Logger.Info("Initializing gemini client", zap.String("model", cfg.Gemini.Model))
		client, err := geminiclient.NewClient(app.Ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		generator = client
		model := cfg.Gemini.Model
		if model == "" {
			model = geminiclient.DefaultModel
		}
		namespace = "gemini:" + model
	default:
		return nil, fmt.Errorf("unsupported generator provider %q", cfg.Provider)
	}

	if app.Cfg.Cache.RedisAddr == "" {
		return generator, nil
	}

	app.Logger.Info("Connecting to generation cache", zap.String("addr", app.Cfg.Cache.RedisAddr))
	client, err := cache.NewRedisClient(app.Ctx, app.Cfg.Cache.RedisAddr, app.Cfg.Cache.Password, app.Cfg.Cache.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = client

	return cache.NewCachedGenerator(generator, cache.NewRedisKV(client), namespace, app.Cfg.Cache.TTL, app.Logger), nil
}
