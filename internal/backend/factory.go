package backend

import (
	"context"
	"errors"
	"fmt"

	"household/internal/amqp"
	"household/internal/cache"
	"household/internal/log"
	"household/internal/metrics"
	"household/internal/services"
	gsheet "household/internal/sheets/google"
	"household/internal/sheets/memory"
	"household/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger  *log.Logger
	metrics *metrics.Metrics
}

// NewFactory creates a new factory. m may be nil, in which case a private
// registry is created per App.
func NewFactory(logger *log.Logger, m *metrics.Metrics) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger:  logger.WithComponent(log.ComponentBackend),
		metrics: m,
	}
}

// CreateApp opens and migrates the database, connects the optional AMQP
// publisher and builds the services.
func (f *DefaultFactory) CreateApp(ctx context.Context, config Config) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend config: %w", err)
	}

	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	m := f.metrics
	if m == nil {
		m = metrics.New()
	}

	// Initialize AMQP client (optional)
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", log.FieldError, err)
			amqpClient = nil
		} else {
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	// A nil *amqp.Client must not become a non-nil interface.
	var publisher services.EventPublisher
	if amqpClient != nil {
		publisher = amqpClient
	}

	taxonomy := services.NewTaxonomyCache(services.DefaultTaxonomyCacheSize, services.DefaultTaxonomyCacheTTL, m)
	caches := cache.NewManager(f.logger)
	for _, c := range taxonomy.Cleaners() {
		caches.Register(c)
	}
	caches.StartCleanup(services.DefaultTaxonomyCacheTTL)

	app := &App{
		Repo:      repo,
		Groups:    services.NewGroupService(repo).WithTaxonomyCache(taxonomy).WithPublisher(publisher, m),
		Expenses:  services.NewExpenseService(repo, publisher, m),
		Reports:   services.NewReportService(repo),
		Publisher: amqpClient,
		Metrics:   m,
		Caches:    caches,
	}
	app.Cleanup = func() error {
		caches.Stop()
		var errs []error
		if amqpClient != nil {
			errs = append(errs, amqpClient.Close())
		}
		errs = append(errs, repo.Close())
		return errors.Join(errs...)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"schema_version", repo.SchemaVersion(),
		"amqp_enabled", amqpClient != nil)

	return app, nil
}

// CreateMirror builds the expense mirror the worker writes to.
func (f *DefaultFactory) CreateMirror(ctx context.Context, config Config) (*MirrorResult, error) {
	switch config.Mirror {
	case SheetsMirror:
		cli, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:      config.GoogleSpreadsheetID,
			SheetName:          config.GoogleSheetName,
			ServiceAccountFile: config.GoogleServiceAccountFile,
			ServiceAccountJSON: config.GoogleServiceAccountJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.logger.InfoContext(ctx, "Initialized Google Sheets mirror", "sheet", config.GoogleSheetName)
		return &MirrorResult{Mirror: cli, Type: SheetsMirror}, nil

	case MemoryMirror, "":
		f.logger.InfoContext(ctx, "Initialized in-memory mirror")
		return &MirrorResult{Mirror: memory.New(), Type: MemoryMirror}, nil

	default:
		return nil, fmt.Errorf("unsupported mirror type: %s", config.Mirror)
	}
}
