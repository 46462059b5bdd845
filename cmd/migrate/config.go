package main

import (
	"os"
	"path/filepath"

	"booksapi/db/migrations"
	"booksapi/internal/config"
)

func dialectFor(driver string) string {
	if driver == config.DriverSQLite {
		return migrations.DialectSQLite
	}
	return migrations.DialectPostgres
}

// sourceDir is the on-disk root that 'create' writes into; the binary itself
// applies the embedded copies.
func sourceDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

func createDir(driver string) (string, error) {
	sub, err := migrations.Dir(dialectFor(driver))
	if err != nil {
		return "", err
	}
	return filepath.Join(sourceDir(), sub), nil
}
