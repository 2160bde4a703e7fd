package backend

import (
	"context"
	"fmt"

	"finboard/internal/amqp"
	"finboard/internal/log"
	"finboard/internal/report"
	"finboard/internal/storage"
	"finboard/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLBackend(ctx, storage.SQLite, config.SQLiteDBPath, config.Migrate)
	case PostgresBackend:
		result, err = f.createSQLBackend(ctx, storage.Postgres, config.PostgresDSN, config.Migrate)
	case MemoryBackend:
		result, err = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.attachPublisher(result, config)
	return result, nil
}

func (f *DefaultFactory) createSQLBackend(ctx context.Context, dialect storage.Dialect, dsn string, migrate bool) (*BackendResult, error) {
	store, err := storage.Open(ctx, storage.Options{Dialect: dialect, DSN: dsn, Migrate: migrate})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", dialect, err)
	}

	f.logger.Info("Initialized SQL backend", "dialect", string(dialect), "migrate", migrate)

	return &BackendResult{
		Backend: sqlBackend{store},
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	store, err := memory.NewFromFile(config.MemorySeedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory seed: %w", err)
	}

	f.logger.Info("Initialized memory backend", "seed_path", config.MemorySeedPath)

	return &BackendResult{
		Backend: memoryBackend{store},
		Cleanup: store.Close,
	}, nil
}

// attachPublisher connects to the broker when configured. A broker that
// cannot be reached only disables report events.
func (f *DefaultFactory) attachPublisher(result *BackendResult, config Config) {
	if config.AMQPURL == "" {
		return
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without report events", log.FieldError, err)
		return
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	result.Publisher = client
	storeCleanup := result.Cleanup
	result.Cleanup = func() error {
		if err := client.Close(); err != nil {
			f.logger.Warn("Failed to close AMQP client", log.FieldError, err)
		}
		if storeCleanup == nil {
			return nil
		}
		return storeCleanup()
	}
}

type sqlBackend struct {
	store *storage.Store
}

func (b sqlBackend) Session(ctx context.Context) (report.Session, error) {
	sess, err := b.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (b sqlBackend) Ping(ctx context.Context) error {
	return b.store.Ping(ctx)
}

type memoryBackend struct {
	store *memory.Store
}

func (b memoryBackend) Session(ctx context.Context) (report.Session, error) {
	sess, err := b.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (b memoryBackend) Ping(ctx context.Context) error {
	return b.store.Ping(ctx)
}
