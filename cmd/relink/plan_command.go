package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"relink/internal/reconcile"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var threshold float64
	var outDir string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Emit SQL migration scripts instead of writing to the store",
		Long: `Plan matches every unlinked record against the full catalog and writes
two reviewable SQL scripts: UPDATEs for accepted matches and INSERTs for
catalog entries with no internal counterpart. Nothing is applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			threshold = resolveThreshold(threshold, cfg.Matching.PlanThreshold)
			if outDir == "" {
				outDir = cfg.Paths.PlanDir
			}

			index, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			planner, err := reconcile.NewPlanner(store, index, logger, reconcile.PlanOptions{
				Threshold:   threshold,
				ReviewFloor: cfg.Matching.ReviewFloor,
				OwnerID:     cfg.Plan.OwnerID,
				Visibility:  cfg.Plan.Visibility,
			})
			if err != nil {
				return err
			}

			plan, report, err := planner.Build(cmd.Context())
			if err != nil {
				return err
			}

			updatesPath, insertsPath, err := plan.WriteScripts(outDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report.RenderSummary(out)
			fmt.Fprintf(out, "\n%d UPDATE statements written to %s\n", len(plan.Updates), updatesPath)
			fmt.Fprintf(out, "%d INSERT statements written to %s\n", len(plan.Inserts), insertsPath)

			reportPath, err := report.Write(cfg.Paths.ReportDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Report written to %s\n", reportPath)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum similarity score for an UPDATE, as a percent (85) or fraction (0.85); default from config")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for the generated scripts (default from config)")
	return cmd
}
