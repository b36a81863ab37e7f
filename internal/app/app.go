package app

import (
	"context"
	"fmt"

	"folio/internal/config"
	"folio/internal/services"
	"folio/internal/store"
	"folio/internal/store/primary"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config

	primary   *primary.StoreImpl
	JobClient store.JobClient

	// Expose individual store interfaces for service initialization
	PostStore     store.PostStore
	CategoryStore store.CategoryStore
	JobStore      store.JobStore

	// --- Initialized Services ---
	PostService           *services.PostService
	CategoryService       *services.CategoryService
	CategorizationService *services.CategorizationService
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	app := &App{Config: cfg}

	if err := app.initPrimaryStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.Close()
		return nil, err
	}
	app.initServices()

	log.Debug("Application initialization complete.")
	return app, nil
}

// RedisOpt returns the asynq connection options shared by the job client and the worker.
func (a *App) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	}
}

// Ping checks the database connection.
func (a *App) Ping(ctx context.Context) error {
	return a.primary.Ping(ctx)
}

// Close releases the job client and the database pool.
func (a *App) Close() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.WithError(err).Warn("Error closing job client")
		}
	}
	if a.primary != nil {
		a.primary.Close()
	}
}

// --- Private Helper Methods ---

func (a *App) initPrimaryStore(ctx context.Context) error {
	ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.Primary.DSN)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	a.primary = ps
	a.PostStore = ps
	a.CategoryStore = ps
	a.JobStore = ps
	return nil
}

func (a *App) initJobClient() error {
	jc, err := store.NewAsynqJobClient(a.RedisOpt(), a.JobStore)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

func (a *App) initServices() {
	cat := a.Config.Categorization
	a.PostService = services.NewPostService(a.PostStore)
	a.CategoryService = services.NewCategoryService(a.CategoryStore)
	a.CategorizationService = services.NewCategorizationService(services.CategorizationServiceDeps{
		PostStore:     a.PostStore,
		CategoryStore: a.CategoryStore,
		JobStore:      a.JobStore,
		JobClient:     a.JobClient,
		Options: services.CategorizationOptions{
			VisibilityThreshold: cat.VisibilityThreshold,
			AutoAssignThreshold: cat.AutoAssignThreshold,
			ReviewSuggestions:   cat.ReviewSuggestions,
			HistorySize:         cat.HistorySize,
		},
	})
}
