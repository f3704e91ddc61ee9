// Command cleanup removes study plans that have no items and are older than
// the configured orphan age. Such plans are left behind by clients that
// create a plan and its items in separate requests and fail in between.
// It is intended to be invoked by an external cron job, not as an
// in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/studyplanner-backend/internal/app"
	"github.com/heartmarshall/studyplanner-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open plan store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	threshold := time.Now().Add(-time.Duration(cfg.Planner.OrphanAgeMinutes) * time.Minute)

	deleted, err := store.Plans.DeleteOrphanPlans(ctx, threshold)
	if err != nil {
		logger.Error("orphan plan cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		store.Close()
		os.Exit(1)
	}

	logger.Info("orphan plan cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
		slog.String("driver", store.Driver),
	)
}
