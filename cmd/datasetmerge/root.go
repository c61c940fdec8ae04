package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dusk-indust/datasetmerge/internal/config"
	"github.com/dusk-indust/datasetmerge/internal/merge"
	"github.com/dusk-indust/datasetmerge/internal/sheet"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ConfigPath     string
	InputDir       string
	Extensions     []string
	Sheet          string
	KeyColumn      string
	SolutionColumn string
	DatasetOutput  string
	MismatchOutput string
	StrictRows     bool
	Verbose        bool
}

// app carries the process-wide dependencies shared by every command.
type app struct {
	fs     afero.Fs
	out    io.Writer
	logger *zap.Logger
	flags  cliFlags
	cfg    config.ProjectConfig
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "datasetmerge",
		Short: "Merge annotated spreadsheets into a dataset",
		Long: `datasetmerge reads every spreadsheet in the input directory (in file name
order), aligns their rows by position, and writes one record per row:

  id         row number, starting at 1
  paragraph  the annotation key (to_annotate) from the first file
  words      the non-empty solution values from every file, in file order

Rows whose annotation key differs between files are listed in the mismatch
report. The mismatch file is only written when there is at least one.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() != "init" {
				cfg, err := a.resolveConfig(cmd)
				if err != nil {
					return err
				}
				a.cfg = cfg
			}
			if a.logger != nil {
				return nil
			}
			logger, err := newLogger(a.cfg.Verbose || a.flags.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, a)
		},
	}

	f := &a.flags
	pf := root.PersistentFlags()
	pf.StringVar(&f.ConfigPath, "config", "", "project config file (default: datasetmerge.yml or datasetmerge.yaml if present)")
	pf.StringVar(&f.InputDir, "input-dir", config.DefaultInputDir, "directory scanned for spreadsheet files")
	pf.StringSliceVar(&f.Extensions, "ext", config.DefaultExtensions, "spreadsheet extensions to include (.ods, .xlsx, .csv)")
	pf.StringVar(&f.Sheet, "sheet", "", "sheet to read from each workbook (default: first sheet)")
	pf.StringVar(&f.KeyColumn, "key-column", config.DefaultKeyColumn, "annotation key column")
	pf.StringVar(&f.SolutionColumn, "solution-column", config.DefaultSolutionColumn, "column merged into words")
	pf.BoolVar(&f.StrictRows, "strict-rows", false, "fail unless every file has the same number of rows")
	pf.BoolVarP(&f.Verbose, "verbose", "v", false, "enable debug logging and print mismatch details")

	root.Flags().StringVar(&f.DatasetOutput, "dataset-output", config.DefaultDatasetOutput, "output path for the dataset file (.yaml or .json)")
	root.Flags().StringVar(&f.MismatchOutput, "mismatch-output", config.DefaultMismatchOutput, "output path for the mismatch file (.yaml or .json)")

	root.AddCommand(newCheckCmd(a), newInitCmd(a))
	return root
}

// newLogger builds the zap logger. Logs go to stderr so stdout only carries
// the run summary.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// resolveConfig layers the project config file over the built-in defaults
// and explicitly set flags over both.
func (a *app) resolveConfig(cmd *cobra.Command) (config.ProjectConfig, error) {
	var (
		cfg *config.ProjectConfig
		err error
	)
	if a.flags.ConfigPath != "" {
		cfg, err = config.LoadFile(a.fs, a.flags.ConfigPath)
	} else {
		cfg, err = config.Load(a.fs, ".")
	}
	if err != nil {
		return config.ProjectConfig{}, err
	}

	f, set := a.flags, cmd.Flags().Changed
	if set("input-dir") {
		cfg.InputDir = f.InputDir
	}
	if set("ext") {
		cfg.Extensions = f.Extensions
	}
	if set("sheet") {
		cfg.Sheet = f.Sheet
	}
	if set("key-column") {
		cfg.KeyColumn = f.KeyColumn
	}
	if set("solution-column") {
		cfg.SolutionColumn = f.SolutionColumn
	}
	if set("dataset-output") {
		cfg.DatasetOutput = f.DatasetOutput
	}
	if set("mismatch-output") {
		cfg.MismatchOutput = f.MismatchOutput
	}
	if set("strict-rows") {
		cfg.StrictRows = f.StrictRows
	}
	if set("verbose") {
		cfg.Verbose = f.Verbose
	}
	return cfg.WithDefaults(), nil
}

// reconcile loads every input table and runs the reconciler.
func (a *app) reconcile(cfg config.ProjectConfig) (*merge.Result, error) {
	loader := &sheet.Loader{
		FS:         a.fs,
		Extensions: cfg.Extensions,
		Sheet:      cfg.Sheet,
		Logger:     a.logger,
	}
	tables, err := loader.LoadDir(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("load inputs: %w", err)
	}
	a.logger.Info("Loaded input files",
		zap.String("dir", cfg.InputDir),
		zap.Int("files", len(tables)))

	policy := merge.RowCountFirst
	if cfg.StrictRows {
		policy = merge.RowCountStrict
	}
	res, err := merge.NewReconciler(merge.Options{
		KeyColumn:      cfg.KeyColumn,
		SolutionColumn: cfg.SolutionColumn,
		RowCount:       policy,
		Logger:         a.logger,
	}).Reconcile(tables)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	return res, nil
}
