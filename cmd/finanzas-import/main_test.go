package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"finanzas-chat/internal/models"
	"finanzas-chat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const legacyExport = `[
  {"id":"1710000000000","amount":10,"description":"taxi","category":"Transporte","timestamp":1710000000000},
  {"id":"1710000100000","amount":25.5,"description":"almuerzo","timestamp":"2024-03-09T16:15:00Z"}
]`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "expenses.json")
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("STORAGE_FILE_PATH", storePath)
	t.Setenv("LOG_LEVEL", "error")
	return storePath
}

func TestImportJSON(t *testing.T) {
	storePath := setupStore(t)
	input := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(input, []byte(legacyExport), 0o644))

	out, err := runCmd(t, "json", input)
	require.NoError(t, err)
	assert.Contains(t, out, "2 read, 2 added, 0 already present")

	expenses, err := repository.NewFileStore(storePath, zap.NewNop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, models.CategoryTransport, expenses[0].Category)
	assert.Equal(t, models.CategoryOther, expenses[1].Category)

	// Re-importing the same file adds nothing.
	out, err = runCmd(t, "json", input)
	require.NoError(t, err)
	assert.Contains(t, out, "2 read, 0 added, 2 already present")
}

func TestImportCSV_DryRun(t *testing.T) {
	storePath := setupStore(t)

	var buf bytes.Buffer
	require.NoError(t, repository.WriteExpensesCSV(&buf, []models.Expense{
		{ID: "x", Amount: 12, Description: "libro", Category: models.CategoryEducation},
	}, nil))
	input := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(input, buf.Bytes(), 0o644))

	out, err := runCmd(t, "--dry-run", "csv", input)
	require.NoError(t, err)
	assert.Contains(t, out, "1 read, 1 added")

	_, statErr := os.Stat(storePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestImport_Errors(t *testing.T) {
	setupStore(t)

	_, err := runCmd(t, "json")
	assert.Error(t, err)

	_, err = runCmd(t, "json", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
