package cmd

import (
	"context"

	"craftdex/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var restoreStrategy string

// backupCmd uploads a JSON export to object storage.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a catalog backup to object storage",
	Long: `Export the whole catalog as JSON and upload it to the configured
object storage bucket. Requires storage to be enabled in the configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cfg, l, err := buildTransferService()
		if err != nil {
			return err
		}

		if err := svc.Backup(context.Background()); err != nil {
			return err
		}

		l.Info("Backup complete",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("object", cfg.Transfer.BackupObject))
		return nil
	},
}

// restoreCmd downloads the latest backup and imports it.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the catalog from the object storage backup",
	Long: `Download the latest backup from the configured object storage bucket
and merge it into the catalog under the chosen strategy.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cfg, l, err := buildTransferService()
		if err != nil {
			return err
		}

		name := restoreStrategy
		if name == "" {
			name = cfg.Transfer.DefaultStrategy
		}
		strategy, err := reconcile.ParseStrategy(name)
		if err != nil {
			return err
		}

		report, err := svc.Restore(context.Background(), strategy)
		if err != nil {
			return err
		}

		l.Info("Restore complete",
			zap.String("strategy", string(strategy)),
			zap.Int("failed", report.TotalFailed()))
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringVar(&restoreStrategy, "strategy", "", "Merge strategy: update, replace, or skip (default from config)")

	RootCmd.AddCommand(backupCmd)
	RootCmd.AddCommand(restoreCmd)
}
