package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/datasetmerge/internal/report"
)

// errMismatchesFound makes `check` exit non-zero when the inputs disagree.
var errMismatchesFound = errors.New("annotation key mismatches found")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report annotation key mismatches without writing any file",
		Long: `check loads and reconciles the input files exactly like the merge does,
prints every mismatched row and exits non-zero if there is at least one.
Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(a)
		},
	}
}

func runCheck(a *app) error {
	res, err := a.reconcile(a.cfg)
	if err != nil {
		return err
	}

	if err := report.PrintMismatches(a.out, res.Mismatches); err != nil {
		return fmt.Errorf("print mismatches: %w", err)
	}
	if err := report.Print(a.out, report.Summary{
		Records:    len(res.Records),
		Mismatches: len(res.Mismatches),
	}); err != nil {
		return err
	}

	if len(res.Mismatches) > 0 {
		return fmt.Errorf("%w in %d of %d rows", errMismatchesFound, len(res.Mismatches), len(res.Records))
	}
	return nil
}
