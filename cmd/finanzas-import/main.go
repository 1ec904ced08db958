package main

import (
	"bytes"
	"fmt"
	"os"

	"finanzas-chat/internal/models"
	"finanzas-chat/internal/repository"
	"finanzas-chat/pkg/config"
	"finanzas-chat/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type decodeFunc func(data []byte, logger *zap.Logger) ([]models.Expense, error)

func decodeJSON(data []byte, logger *zap.Logger) ([]models.Expense, error) {
	return repository.DecodeExpensesJSON(data, logger)
}

func decodeCSV(data []byte, _ *zap.Logger) ([]models.Expense, error) {
	return repository.ReadExpensesCSV(bytes.NewReader(data))
}

func newRootCmd() *cobra.Command {
	var dryRun bool

	root := &cobra.Command{
		Use:   "finanzas-import",
		Short: "Import expenses into the configured store",
		Long: `Import expenses into the store configured through the environment (STORAGE_DRIVER).
Expenses whose id is already stored are skipped, so an import can be repeated safely.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Report what would be imported without saving")

	root.AddCommand(&cobra.Command{
		Use:   "json <file>",
		Short: "Import a JSON export (including the legacy browser export)",
		Long:  `Import a JSON array of expenses. Timestamps may be RFC 3339 strings or Unix milliseconds; missing or unknown categories become "Otros".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], decodeJSON, dryRun)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "csv <file>",
		Short: "Import a CSV file produced by the export endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], decodeCSV, dryRun)
		},
	})

	return root
}

func runImport(cmd *cobra.Command, path string, decode decodeFunc, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	incoming, err := decode(data, appLogger)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	ctx := cmd.Context()
	store, closeStore, err := repository.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	existing, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	merged, added := repository.MergeExpenses(existing, incoming)
	appLogger.Info("Import prepared",
		zap.String("file", path),
		zap.Int("read", len(incoming)),
		zap.Int("added", added),
		zap.Int("skipped", len(incoming)-added),
		zap.Bool("dry_run", dryRun),
	)

	if !dryRun && added > 0 {
		if err := store.Save(ctx, merged); err != nil {
			return fmt.Errorf("failed to save expenses: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d read, %d added, %d already present\n", len(incoming), added, len(incoming)-added)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
