package cmd

import (
	"context"
	"fmt"

	"craftdex/feature/transfer/codec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat        string
	exportOnlyResources bool
	exportOnlyRecipes   bool
)

// exportCmd writes the catalog to a file.
var exportCmd = &cobra.Command{
	Use:   "export <destination>",
	Short: "Export the catalog to a file",
	Long: `Export all resources and crafting recipes to a document.

For the csv format the destination's extension is stripped and a bundle
directory with resources.csv and crafting_recipes.csv is created instead.

Examples:
  # Full export as JSON
  craftdex export catalog.json

  # Markdown, recipes only
  craftdex export recipes.md --format markdown --recipes

  # CSV bundle directory "backup/"
  craftdex export backup.csv --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Document format: json, markdown, or csv (default from config)")
	exportCmd.Flags().BoolVar(&exportOnlyResources, "resources", false, "Export only resources")
	exportCmd.Flags().BoolVar(&exportOnlyRecipes, "recipes", false, "Export only crafting recipes")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOnlyResources && exportOnlyRecipes {
		return fmt.Errorf("--resources and --recipes are mutually exclusive")
	}

	svc, cfg, l, err := buildTransferService()
	if err != nil {
		return err
	}

	name := exportFormat
	if name == "" {
		name = cfg.Transfer.DefaultFormat
	}
	format, err := codec.ParseFormat(name)
	if err != nil {
		return err
	}

	ctx := context.Background()
	dest := args[0]

	switch {
	case exportOnlyResources:
		err = svc.ExportResources(ctx, dest, format)
	case exportOnlyRecipes:
		err = svc.ExportRecipes(ctx, dest, format)
	default:
		err = svc.ExportData(ctx, dest, format)
	}
	if err != nil {
		return err
	}

	l.Info("Export complete",
		zap.String("destination", dest),
		zap.String("format", string(format)))
	return nil
}
