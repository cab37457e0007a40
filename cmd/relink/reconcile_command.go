package main

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"relink/internal/reconcile"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var start int
	var threshold float64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match one batch of unlinked records against the catalog",
		Long: `Reconcile processes one page of records that have no resource link yet,
matches each against the reference catalog, and either applies accepted
matches immediately or, with --dry-run, only reports what would change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			if limit <= 0 {
				limit = cfg.Matching.BatchSize
			}
			threshold = resolveThreshold(threshold, cfg.Matching.AcceptThreshold)

			index, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			strategy := reconcile.Strategy(reconcile.NewDryRun())
			if !dryRun {
				// Live runs write to the store; a lock keeps concurrent
				// invocations from racing on the same records.
				lock := flock.New(filepath.Join(cfg.Paths.LogDir, "reconcile.lock"))
				ok, err := lock.TryLock()
				if err != nil {
					return fmt.Errorf("acquire run lock: %w", err)
				}
				if !ok {
					return fmt.Errorf("another reconcile run is active (lock %s)", lock.Path())
				}
				defer func() {
					_ = lock.Unlock()
				}()
				strategy = reconcile.NewApply(store)
			}

			driver, err := reconcile.New(store, index, strategy, logger, reconcile.Options{
				Start:       start,
				Limit:       limit,
				Threshold:   threshold,
				ReviewFloor: cfg.Matching.ReviewFloor,
			})
			if err != nil {
				return err
			}

			report, err := driver.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report.RenderSummary(out)

			path, err := report.Write(cfg.Paths.ReportDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nReport written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Batch size (default from config)")
	cmd.Flags().IntVar(&start, "start", 0, "Offset into the eligible set, ordered by title")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum similarity score to accept a match, as a percent (80) or fraction (0.8); default from config")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report matches without writing to the record store")
	return cmd
}

// resolveThreshold maps the --threshold flag onto the 0-1 score scale the
// matcher uses. Zero means "not set" and falls back to the config value;
// values above 1 are read as percentages.
func resolveThreshold(flagValue, configDefault float64) float64 {
	if flagValue == 0 {
		return configDefault
	}
	if flagValue > 1 {
		return flagValue / 100
	}
	return flagValue
}
