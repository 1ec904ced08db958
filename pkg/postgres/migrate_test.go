package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.Contains(t, names, "000001_create_expenses.up.sql")
	assert.Contains(t, names, "000001_create_expenses.down.sql")

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_create_expenses.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS expenses")
}
