// Command migrate applies the embedded schema migrations to the configured
// plan store.
//
// Usage:
//
//	migrate up      apply all pending migrations
//	migrate down    roll back the most recent migration
//	migrate status  list migrations and whether they are applied
//
// The store is selected by STORE_DRIVER like every other command.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"text/tabwriter"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // database/sql driver "sqlite"

	"github.com/heartmarshall/studyplanner-backend/internal/config"
	"github.com/heartmarshall/studyplanner-backend/migrations"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate up|down|status")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, os.Args[1]); err != nil {
		log.Fatalf("migrate %s: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, cfg *config.Config, command string) error {
	db, dialect, fsys, err := open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		for _, r := range results {
			log.Printf("applied %s (%s)", r.Source.Path, r.Duration)
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			log.Print("no pending migrations")
		}
		return nil

	case "down":
		r, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		if r != nil {
			log.Printf("rolled back %s (%s)", r.Source.Path, r.Duration)
		}
		return nil

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tFILE")
		for _, s := range statuses {
			applied := "-"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func open(cfg *config.Config) (*sql.DB, goose.Dialect, fs.FS, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			return nil, "", nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, goose.DialectPostgres, migrations.Postgres, nil
	case config.DriverSQLite:
		// sqlite.Open would migrate on open; status and down need the raw file.
		db, err := sql.Open("sqlite", cfg.Store.SQLitePath+"?_pragma=foreign_keys(1)")
		if err != nil {
			return nil, "", nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, goose.DialectSQLite3, migrations.SQLite, nil
	default:
		return nil, "", nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
