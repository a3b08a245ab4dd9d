package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"pengeplan/internal/adapters"
	"pengeplan/internal/amqp"
	"pengeplan/internal/memory"
	"pengeplan/internal/ports"
	"pengeplan/internal/services"
	"pengeplan/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return f.withEvents(ctx, config, repo, repo), nil

	case PostgresBackend:
		repo, err := storage.NewPostgresRepository(ctx, config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres repository: %w", err)
		}
		f.logger.Info("Initialized Postgres backend")
		return f.withEvents(ctx, config, repo, repo), nil

	case MemoryBackend:
		return f.createMemoryBackend(config)
	}
	return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
}

// withEvents routes debt writes through a DebtService that publishes to
// AMQP when a broker is configured and reachable.
func (f *DefaultFactory) withEvents(ctx context.Context, config Config, store ports.Store, closer io.Closer) *BackendResult {
	closers := []io.Closer{closer}
	var publisher services.DebtEventPublisher

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without plan events", "error", err)
		} else {
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			publisher = client
			closers = append(closers, client)
		}
	}

	svc := services.NewDebtService(store, publisher, closers...)
	return &BackendResult{
		Backend: adapters.NewEventedStore(store, svc),
		Cleanup: svc.Close,
	}
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := memory.NewFromFiles(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory backend seed: %w", err)
	}

	f.logger.Info("Initialized memory backend", "data_directory", dataDir)
	return &BackendResult{Backend: store}, nil
}
