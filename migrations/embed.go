// Package migrations holds the goose migrations of both plan stores.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

var (
	// Postgres contains the migrations for the PostgreSQL store.
	Postgres = mustSub("postgres")
	// SQLite contains the migrations for the local SQLite store.
	SQLite = mustSub("sqlite")
)

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
