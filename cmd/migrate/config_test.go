package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDir_Default(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")

	dir, err := createDir("postgres")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("db", "migrations", "postgres"), dir)
}

func TestCreateDir_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	dir, err := createDir("sqlite")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/migrations", "sqlite"), dir)
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, "sqlite3", dialectFor("sqlite"))
	assert.Equal(t, "postgres", dialectFor("postgres"))
}
