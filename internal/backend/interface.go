package backend

import (
	"context"

	"household/internal/amqp"
	"household/internal/cache"
	"household/internal/metrics"
	"household/internal/services"
	"household/internal/sheets"
	"household/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// App wires the storage, services and optional event publisher shared by
// the server and the operator CLI.
type App struct {
	Repo      *storage.SQLiteRepository
	Groups    *services.GroupService
	Expenses  *services.ExpenseService
	Reports   *services.ReportService
	Publisher *amqp.Client // nil when events are disabled
	Metrics   *metrics.Metrics
	Caches    *cache.Manager
	Cleanup   CleanupFunc
}

// MirrorResult contains the mirror instance and the kind that was built.
type MirrorResult struct {
	Mirror sheets.ExpenseMirror
	Type   MirrorType
}

// Factory creates application components based on configuration
type Factory interface {
	CreateApp(ctx context.Context, config Config) (*App, error)
	CreateMirror(ctx context.Context, config Config) (*MirrorResult, error)
}

// Config holds configuration for component creation
type Config struct {
	SQLiteDBPath string

	// AMQP, empty URL disables events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Mirror selection
	Mirror                   MirrorType
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
}

// MirrorType represents where the worker mirrors expenses
type MirrorType string

const (
	SheetsMirror MirrorType = "sheets"
	MemoryMirror MirrorType = "memory"
)

// String implements fmt.Stringer
func (mt MirrorType) String() string {
	return string(mt)
}

// IsValid returns true if the mirror type is valid
func (mt MirrorType) IsValid() bool {
	switch mt {
	case SheetsMirror, MemoryMirror:
		return true
	default:
		return false
	}
}
