package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/datasetmerge/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter datasetmerge.yml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(a, dir, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// runInit installs the commented config template into dir.
func runInit(a *app, dir string, force bool) error {
	path, written, err := config.WriteTemplate(a.fs, dir, force)
	if err != nil {
		return err
	}
	if !written {
		_, err = fmt.Fprintf(a.out, "  skipped %s (exists, use --force to overwrite)\n", path)
		return err
	}
	_, err = fmt.Fprintf(a.out, "  created %s\n", path)
	return err
}
