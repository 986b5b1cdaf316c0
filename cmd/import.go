package cmd

import (
	"context"

	"craftdex/core/reconcile"
	"craftdex/feature/transfer/codec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFormat   string
	importStrategy string
)

// importCmd merges a document into the catalog.
var importCmd = &cobra.Command{
	Use:   "import <source>",
	Short: "Import a document into the catalog",
	Long: `Import resources and crafting recipes from a document, merging them
into the catalog under the chosen strategy:

  update   apply the fields present in the document to existing entries
  replace  delete existing entries and recreate them from the document
  skip     leave existing entries untouched (default)

For the csv format the source must be a bundle directory containing
resources.csv and/or crafting_recipes.csv.

Examples:
  craftdex import catalog.json
  craftdex import notes.md --format markdown --strategy update
  craftdex import backup --format csv --strategy replace`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Document format: json, markdown, or csv (default from config)")
	importCmd.Flags().StringVar(&importStrategy, "strategy", "", "Merge strategy: update, replace, or skip (default from config)")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	svc, cfg, l, err := buildTransferService()
	if err != nil {
		return err
	}

	formatName := importFormat
	if formatName == "" {
		formatName = cfg.Transfer.DefaultFormat
	}
	format, err := codec.ParseFormat(formatName)
	if err != nil {
		return err
	}

	strategyName := importStrategy
	if strategyName == "" {
		strategyName = cfg.Transfer.DefaultStrategy
	}
	strategy, err := reconcile.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	report, err := svc.ImportData(context.Background(), args[0], format, strategy)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("source", args[0]),
		zap.String("format", string(format)),
		zap.String("strategy", string(strategy)),
	}
	if report.Resources != nil {
		fields = append(fields,
			zap.Int("resources_created", report.Resources.Created),
			zap.Int("resources_updated", report.Resources.Updated),
			zap.Int("resources_replaced", report.Resources.Replaced),
			zap.Int("resources_skipped", report.Resources.Skipped),
			zap.Int("resources_failed", report.Resources.Failed),
		)
	}
	if report.Recipes != nil {
		fields = append(fields,
			zap.Int("recipes_created", report.Recipes.Created),
			zap.Int("recipes_updated", report.Recipes.Updated),
			zap.Int("recipes_replaced", report.Recipes.Replaced),
			zap.Int("recipes_skipped", report.Recipes.Skipped),
			zap.Int("recipes_failed", report.Recipes.Failed),
		)
	}
	l.Info("Import complete", fields...)
	return nil
}
