package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/datasetmerge/internal/export"
	"github.com/dusk-indust/datasetmerge/internal/report"
)

// runMerge is the root command: load, reconcile, write both outputs and
// print the summary.
func runMerge(_ *cobra.Command, a *app) error {
	cfg := a.cfg
	res, err := a.reconcile(cfg)
	if err != nil {
		return err
	}

	if err := export.WriteDataset(a.fs, cfg.DatasetOutput, res.Records); err != nil {
		return err
	}
	a.logger.Info("Wrote dataset",
		zap.String("path", cfg.DatasetOutput),
		zap.Int("records", len(res.Records)))

	summary := report.Summary{
		DatasetPath: cfg.DatasetOutput,
		Records:     len(res.Records),
		Mismatches:  len(res.Mismatches),
	}
	if len(res.Mismatches) > 0 {
		if err := export.WriteMismatches(a.fs, cfg.MismatchOutput, res.Mismatches); err != nil {
			return err
		}
		summary.MismatchPath = cfg.MismatchOutput
		a.logger.Warn("Annotation key mismatches found",
			zap.Int("rows", len(res.Mismatches)),
			zap.String("path", cfg.MismatchOutput))

		if cfg.Verbose {
			if err := report.PrintMismatches(a.out, res.Mismatches); err != nil {
				return fmt.Errorf("print mismatches: %w", err)
			}
		}
	}

	return report.Print(a.out, summary)
}
