package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/datasetmerge/internal/merge"
	"github.com/dusk-indust/datasetmerge/internal/sheet"
	"github.com/dusk-indust/datasetmerge/internal/sheet/sheettest"
)

const dataDir = "src/assets/data"

type datasetFile struct {
	Datasets []struct {
		ID        int    `yaml:"id"`
		Paragraph string `yaml:"paragraph"`
		Words     []any  `yaml:"words"`
	} `yaml:"datasets"`
}

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &app{fs: afero.NewMemMapFs(), out: &out, logger: zap.NewNop()}, &out
}

func execute(a *app, args ...string) error {
	cmd := newRootCmd(a)
	// A nil slice makes cobra fall back to the test binary's os.Args.
	cmd.SetArgs(append([]string{}, args...))
	return cmd.Execute()
}

func writeODS(t *testing.T, a *app, name string, s sheettest.Sheet) {
	t.Helper()
	require.NoError(t, afero.WriteFile(a.fs, dataDir+"/"+name, sheettest.ODS(t, s), 0o644))
}

func readDataset(t *testing.T, a *app, path string) datasetFile {
	t.Helper()
	data, err := afero.ReadFile(a.fs, path)
	require.NoError(t, err)
	var ds datasetFile
	require.NoError(t, yaml.Unmarshal(data, &ds))
	return ds
}

func TestMerge_NoMismatches(t *testing.T) {
	a, out := newTestApp(t)
	writeODS(t, a, "a.ods", sheettest.Annotated([2]any{"p1", "x"}, [2]any{"p2", "y"}, [2]any{"p3", "z"}))
	writeODS(t, a, "b.ods", sheettest.Annotated([2]any{"p1", "u"}, [2]any{"p2", nil}, [2]any{"p3", "w"}))

	require.NoError(t, execute(a))

	ds := readDataset(t, a, "dataset.yaml")
	require.Len(t, ds.Datasets, 3)
	assert.Equal(t, 1, ds.Datasets[0].ID)
	assert.Equal(t, "p1", ds.Datasets[0].Paragraph)
	assert.Equal(t, []any{"x", "u"}, ds.Datasets[0].Words)
	assert.Equal(t, []any{"y"}, ds.Datasets[1].Words)

	exists, err := afero.Exists(a.fs, "mismatch.yaml")
	require.NoError(t, err)
	assert.False(t, exists, "no mismatch file without mismatches")

	assert.Equal(t, "Generated dataset.yaml with 3 datasets\nNo mismatches found!\n", out.String())
}

func TestMerge_ReportsMismatch(t *testing.T) {
	a, out := newTestApp(t)
	writeODS(t, a, "A.ods", sheettest.Annotated([2]any{"same", "1"}, [2]any{"cat", "2"}))
	writeODS(t, a, "B.ods", sheettest.Annotated([2]any{"same", "3"}, [2]any{"dog", "4"}))

	require.NoError(t, execute(a))

	data, err := afero.ReadFile(a.fs, "mismatch.yaml")
	require.NoError(t, err)
	var mismatches map[int]map[string][]string
	require.NoError(t, yaml.Unmarshal(data, &mismatches))
	assert.Equal(t, map[int]map[string][]string{
		1: {"cat": {"A.ods"}, "dog": {"B.ods"}},
	}, mismatches)

	ds := readDataset(t, a, "dataset.yaml")
	require.Len(t, ds.Datasets, 2)
	assert.Equal(t, "cat", ds.Datasets[1].Paragraph)

	assert.Equal(t, "Generated dataset.yaml with 2 datasets\nFound 1 mismatches, saved to mismatch.yaml\n", out.String())
}

func TestMerge_DigitSolutionsBecomeIntegers(t *testing.T) {
	a, _ := newTestApp(t)
	writeODS(t, a, "a.ods", sheettest.Annotated([2]any{"p", "7"}, [2]any{"q", "4.2"}))
	writeODS(t, a, "b.ods", sheettest.Annotated([2]any{"p", nil}, [2]any{"q", "abc"}))

	require.NoError(t, execute(a))

	ds := readDataset(t, a, "dataset.yaml")
	assert.Equal(t, []any{7}, ds.Datasets[0].Words)
	assert.Equal(t, []any{"4.2", "abc"}, ds.Datasets[1].Words)
}

func TestMerge_OutputFlags(t *testing.T) {
	a, out := newTestApp(t)
	writeODS(t, a, "a.ods", sheettest.Annotated([2]any{"cat", "1"}))
	writeODS(t, a, "b.ods", sheettest.Annotated([2]any{"dog", "2"}))

	require.NoError(t, execute(a,
		"--dataset-output", "out/dataset.json",
		"--mismatch-output", "out/mismatch.yaml"))

	data, err := afero.ReadFile(a.fs, "out/dataset.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"datasets": [{"id": 1, "paragraph": "cat", "words": [1, 2]}]}`, string(data))

	exists, err := afero.Exists(a.fs, "out/mismatch.yaml")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Contains(t, out.String(), "saved to out/mismatch.yaml")
}

func TestMerge_ConfigFileAndFlagPrecedence(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, afero.WriteFile(a.fs, "datasetmerge.yml", []byte(`
inputDir: annotations
extensions: [xlsx]
keyColumn: text
datasetOutput: from-config.yaml
`), 0o644))
	s := sheettest.Sheet{Name: "Sheet1", Rows: [][]any{{"text", "solution"}, {"p", "9"}}}
	require.NoError(t, afero.WriteFile(a.fs, "annotations/a.xlsx", sheettest.XLSX(t, s), 0o644))

	require.NoError(t, execute(a, "--dataset-output", "from-flag.yaml"))

	exists, err := afero.Exists(a.fs, "from-config.yaml")
	require.NoError(t, err)
	assert.False(t, exists, "explicit flag wins over the config file")

	ds := readDataset(t, a, "from-flag.yaml")
	require.Len(t, ds.Datasets, 1)
	assert.Equal(t, []any{9}, ds.Datasets[0].Words)
	assert.Contains(t, out.String(), "Generated from-flag.yaml with 1 datasets")
}

func TestMerge_ExplicitConfigMissing(t *testing.T) {
	a, _ := newTestApp(t)
	err := execute(a, "--config", "nope.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yml")
}

func TestMerge_MissingColumn(t *testing.T) {
	a, _ := newTestApp(t)
	writeODS(t, a, "a.ods", sheettest.Annotated([2]any{"p", "x"}))
	writeODS(t, a, "b.ods", sheettest.Sheet{Name: "Sheet1", Rows: [][]any{{"to_annotate"}, {"p"}}})

	err := execute(a)
	var schemaErr *merge.SchemaError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
	assert.Equal(t, "b.ods", schemaErr.File)

	exists, _ := afero.Exists(a.fs, "dataset.yaml")
	assert.False(t, exists, "nothing is written on a fatal error")
}

func TestMerge_CorruptInput(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, afero.WriteFile(a.fs, dataDir+"/a.ods", []byte("garbage"), 0o644))

	err := execute(a)
	var parseErr *sheet.ParseError
	require.True(t, errors.As(err, &parseErr), "got %v", err)
}

func TestMerge_NoInputs(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.fs.MkdirAll(dataDir, 0o755))

	err := execute(a)
	assert.ErrorIs(t, err, sheet.ErrNoInputFiles)
}

func TestMerge_StrictRows(t *testing.T) {
	a, _ := newTestApp(t)
	writeODS(t, a, "a.ods", sheettest.Annotated([2]any{"p", "x"}))
	writeODS(t, a, "b.ods", sheettest.Annotated([2]any{"p", "y"}, [2]any{"extra", "z"}))

	require.NoError(t, execute(a), "extra rows in later files are ignored by default")

	err := execute(a, "--strict-rows")
	var rowErr *merge.RowCountError
	require.True(t, errors.As(err, &rowErr), "got %v", err)
}

func TestMerge_VerbosePrintsDetails(t *testing.T) {
	a, out := newTestApp(t)
	writeODS(t, a, "A.ods", sheettest.Annotated([2]any{"cat", nil}))
	writeODS(t, a, "B.ods", sheettest.Annotated([2]any{"dog", nil}))

	require.NoError(t, execute(a, "--verbose"))
	assert.Contains(t, out.String(), "Row 0 (id 1):")
	assert.Contains(t, out.String(), `"dog"`)
}

func TestCheck(t *testing.T) {
	a, out := newTestApp(t)
	writeODS(t, a, "A.ods", sheettest.Annotated([2]any{"same", nil}, [2]any{"cat", nil}))
	writeODS(t, a, "B.ods", sheettest.Annotated([2]any{"same", nil}, [2]any{"dog", nil}))

	err := execute(a, "check")
	assert.ErrorIs(t, err, errMismatchesFound)
	assert.Contains(t, out.String(), "Row 1 (id 2):")
	assert.Contains(t, out.String(), "Found 1 mismatches\n")

	for _, p := range []string{"dataset.yaml", "mismatch.yaml"} {
		exists, err := afero.Exists(a.fs, p)
		require.NoError(t, err)
		assert.False(t, exists, "check writes nothing")
	}
}

func TestCheck_Clean(t *testing.T) {
	a, out := newTestApp(t)
	writeODS(t, a, "A.ods", sheettest.Annotated([2]any{"same", nil}))
	writeODS(t, a, "B.ods", sheettest.Annotated([2]any{"same", nil}))

	require.NoError(t, execute(a, "check"))
	assert.Equal(t, "No mismatches found!\n", out.String())
}

func TestInit(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, execute(a, "init", "project"))
	assert.Equal(t, "  created project/datasetmerge.yml\n", out.String())

	out.Reset()
	require.NoError(t, execute(a, "init", "project"))
	assert.Contains(t, out.String(), "skipped project/datasetmerge.yml")
}

func TestRejectsArguments(t *testing.T) {
	a, _ := newTestApp(t)
	require.Error(t, execute(a, "stray"))
}
