// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"

	"minitodo/internal/controller"
	"minitodo/internal/domain"
	"minitodo/internal/infra/config"
	"minitodo/internal/infra/logging"
	"minitodo/internal/infra/sessionstore"
	"minitodo/internal/infra/supabase"
	"minitodo/internal/session"
	"minitodo/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks domain.TaskGateway
	Auth  domain.AuthGateway
	Store domain.SessionStore
	Clock domain.Clock

	// Pointer fields
	Sessions  *session.Manager
	Logger    *slog.Logger
	Config    *domain.Config
	logCloser io.Closer
}

// New creates a Container by loading configuration from the environment
// and the default config directory. It fails when the gateway URL or API
// key is missing; the process must not start without them.
func New() (*Container, error) {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(config.DefaultStateDir(), logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		// A broken log destination degrades to a discard logger; the
		// app stays usable.
		logger.Warn("logging setup", "error", err)
	}

	clock := domain.RealClock{}
	client := supabase.New(cfg.GatewayURL, cfg.AnonKey, clock)
	store := sessionstore.New(loader.Dir())

	return &Container{
		Tasks:     client,
		Auth:      client,
		Store:     store,
		Clock:     clock,
		Sessions:  session.NewManager(client, store, clock, logger),
		Logger:    logger,
		Config:    cfg,
		logCloser: closer,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, tasks domain.TaskGateway, auth domain.AuthGateway, store domain.SessionStore, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Tasks:    tasks,
		Auth:     auth,
		Store:    store,
		Clock:    clock,
		Sessions: session.NewManager(auth, store, clock, logger),
		Logger:   logger,
		Config:   cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.logCloser != nil {
		return c.logCloser.Close()
	}
	return nil
}

// UseCase factory methods

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	return usecase.NewCreateTask(c.Tasks)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Tasks)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Tasks)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.CreateTaskUseCase())
}

// Controller returns a new task synchronization controller.
func (c *Container) Controller() *controller.Controller {
	return controller.New(
		c.ListTasksUseCase(),
		c.CreateTaskUseCase(),
		c.EditTaskUseCase(),
		c.DeleteTaskUseCase(),
		c.ToggleTaskUseCase(),
		c.Logger,
	)
}
