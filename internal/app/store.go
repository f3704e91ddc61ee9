package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/studyplanner-backend/internal/adapter/postgres"
	pgstudyplan "github.com/heartmarshall/studyplanner-backend/internal/adapter/postgres/studyplan"
	"github.com/heartmarshall/studyplanner-backend/internal/adapter/sqlite"
	litestudyplan "github.com/heartmarshall/studyplanner-backend/internal/adapter/sqlite/studyplan"
	"github.com/heartmarshall/studyplanner-backend/internal/config"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

// PlanRepo is the plan store as seen by every command: the service
// operations plus orphan cleanup.
type PlanRepo interface {
	CreatePlan(ctx context.Context, userID uuid.UUID, topic string) (*domain.StudyPlan, error)
	UpdateTopic(ctx context.Context, userID, planID uuid.UUID, topic string) error
	GetPlan(ctx context.Context, userID, planID uuid.UUID) (*domain.StudyPlan, error)
	LatestPlan(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, error)
	ListPlans(ctx context.Context, userID uuid.UUID) ([]domain.StudyPlan, error)
	DeletePlan(ctx context.Context, userID, planID uuid.UUID) error
	DeleteOrphanPlans(ctx context.Context, before time.Time) (int64, error)

	ReplaceItems(ctx context.Context, planID uuid.UUID, tasks []string) ([]domain.StudyPlanItem, error)
	ListItems(ctx context.Context, planID uuid.UUID) ([]domain.StudyPlanItem, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.StudyPlanItem, error)
	SetCompleted(ctx context.Context, userID, itemID uuid.UUID, completed bool) error
	SetDetails(ctx context.Context, userID, itemID uuid.UUID, details string) error
}

// TxManager runs fn in one store transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store is an opened plan store of either driver.
type Store struct {
	Driver string
	Plans  PlanRepo
	Tx     TxManager
	Ping   func(ctx context.Context) error
	Close  func()

	// Collector exports connection statistics of the store.
	Collector prometheus.Collector
}

// OpenStore connects to the backend named by cfg.Store.Driver. SQLite
// databases are migrated on open; PostgreSQL is migrated by cmd/migrate.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("plan store opened", slog.String("driver", config.DriverPostgres))
		return &Store{
			Driver: config.DriverPostgres,
			Plans:  pgstudyplan.New(pool),
			Tx:     postgres.NewTxManager(pool),
			Ping:   pool.Ping,
			Close:  pool.Close,

			Collector: postgres.NewPoolCollector(pool),
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("plan store opened",
			slog.String("driver", config.DriverSQLite),
			slog.String("path", cfg.Store.SQLitePath),
		)
		return &Store{
			Driver: config.DriverSQLite,
			Plans:  litestudyplan.New(db),
			Tx:     sqlite.NewTxManager(db),
			Ping:   db.PingContext,
			Close: func() {
				if err := db.Close(); err != nil {
					logger.Warn("close sqlite", slog.String("error", err.Error()))
				}
			},

			Collector: collectors.NewDBStatsCollector(db, "plans"),
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
