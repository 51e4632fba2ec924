package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenwsellars/Cycles/internal/config"
	"github.com/allenwsellars/Cycles/internal/importer"
	"github.com/allenwsellars/Cycles/internal/storage"
	"github.com/allenwsellars/Cycles/internal/storage/memory"
	"github.com/allenwsellars/Cycles/internal/tracker"
)

// runCLI executes one command against store and returns its stdout.
func runCLI(t *testing.T, store storage.Store, stdin string, args ...string) (string, error) {
	t.Helper()

	orig := openStore
	openStore = func(config.Config) (storage.Store, error) { return store, nil }
	defer func() { openStore = orig }()

	root, s := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	require.NoError(t, s.close())
	return out.String(), err
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvMetricsFile, "")
	t.Setenv(config.EnvLogLevel, "error")
}

var idPattern = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

func TestBikeCommands(t *testing.T) {
	isolateConfig(t)
	store := memory.New()

	out, err := runCLI(t, store, "", "bike", "add", "Gravel", "Bike")
	require.NoError(t, err)
	assert.Contains(t, out, `Added bike "Gravel Bike"`)
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2)
	gravelID := m[1]

	out, err = runCLI(t, store, "", "bike", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "  My Bike (0 records)")
	assert.Contains(t, out, "* "+gravelID+"  Gravel Bike")

	_, err = runCLI(t, store, "", "bike", "add", "   ")
	assert.ErrorIs(t, err, tracker.ErrEmptyBikeName)

	_, err = runCLI(t, store, "", "bike", "select", "nope")
	assert.ErrorContains(t, err, `unknown bike "nope"`)
}

func TestBikeSelect(t *testing.T) {
	isolateConfig(t)
	store := memory.New()

	_, err := runCLI(t, store, "", "import", "-")
	require.Error(t, err, "empty stdin is not valid JSON")

	_, err = runCLI(t, store, `{"bikes":[{"id":"b1","name":"Road"},{"id":"b2","name":"Commuter"}],"serviceRecords":[]}`, "import")
	require.NoError(t, err)

	out, err := runCLI(t, store, "", "bike", "select", "b2")
	require.NoError(t, err)
	assert.Contains(t, out, `Selected "Commuter"`)

	out, err = runCLI(t, store, "", "bike", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "* b2  Commuter")
}

func TestRecordCommands(t *testing.T) {
	isolateConfig(t)
	store := memory.New()

	for _, args := range [][]string{
		{"record", "add", "--month", "2023-01", "--type", "Tune-up"},
		{"record", "add", "--month", "2024-06", "--type", "New chain", "--notes", "  KMC  "},
		{"record", "add", "--month", "2024-03", "--type", "Bar tape"},
	} {
		_, err := runCLI(t, store, "", args...)
		require.NoError(t, err, "%v", args)
	}

	out, err := runCLI(t, store, "", "record", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "My Bike: 3 records")
	i1, i2, i3 := strings.Index(out, "06-2024"), strings.Index(out, "03-2024"), strings.Index(out, "01-2023")
	assert.True(t, i1 > 0 && i1 < i2 && i2 < i3, "expected descending months, got:\n%s", out)

	_, err = runCLI(t, store, "", "record", "add", "--month", "2024-05", "--type", " ")
	assert.ErrorIs(t, err, tracker.ErrMissingServiceType)

	_, err = runCLI(t, store, "", "record", "add", "--month", "", "--type", "Tune-up")
	assert.ErrorIs(t, err, tracker.ErrMissingMonth)

	_, err = runCLI(t, store, "", "record", "add", "--month", "06-2024", "--type", "Tune-up")
	assert.ErrorIs(t, err, tracker.ErrInvalidMonth)
}

func TestRecordEdit(t *testing.T) {
	isolateConfig(t)
	store := memory.New()

	_, err := runCLI(t, store, `{
		"bikes": [{"id": "b1", "name": "Road"}],
		"serviceRecords": [{"id": "r1", "bikeId": "b1", "date": "04-2024", "serviceType": "Tune-up", "notes": "cables"}]
	}`, "import")
	require.NoError(t, err)

	out, err := runCLI(t, store, "", "record", "edit", "r1", "--type", "Overhaul")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated r1: 04-2024 Overhaul")

	out, err = runCLI(t, store, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"notes": "cables"`)
	assert.Contains(t, out, `"serviceType": "Overhaul"`)

	_, err = runCLI(t, store, "", "record", "edit", "r9", "--type", "x")
	assert.ErrorIs(t, err, tracker.ErrRecordNotFound)
}

func TestRecordDelete(t *testing.T) {
	isolateConfig(t)
	store := memory.New()

	_, err := runCLI(t, store, `{
		"bikes": [{"id": "b1", "name": "Road"}],
		"serviceRecords": [
			{"id": "r1", "bikeId": "b1", "date": "04-2024", "serviceType": "Tune-up"},
			{"id": "r2", "bikeId": "b1", "date": "05-2024", "serviceType": "Chain"}
		]
	}`, "import")
	require.NoError(t, err)

	out, err := runCLI(t, store, "n\n", "record", "delete", "r1")
	assert.ErrorIs(t, err, tracker.ErrNotConfirmed)
	assert.Contains(t, out, tracker.DeletePrompt)

	_, err = runCLI(t, store, "y\n", "record", "delete", "r1")
	require.NoError(t, err)

	_, err = runCLI(t, store, "", "record", "delete", "r2", "--yes")
	require.NoError(t, err)

	out, err = runCLI(t, store, "", "record", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Road: 0 records")
}

func TestExportImport(t *testing.T) {
	isolateConfig(t)
	src := memory.New()

	_, err := runCLI(t, src, "", "record", "add", "--month", "2024-02", "--type", "Brake pads")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.json")
	_, err = runCLI(t, src, "", "export", "--output", path)
	require.NoError(t, err)

	dst := memory.New()
	out, err := runCLI(t, dst, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 bikes and 1 service records")

	srcJSON, err := runCLI(t, src, "", "export")
	require.NoError(t, err)
	dstJSON, err := runCLI(t, dst, "", "export")
	require.NoError(t, err)
	assert.JSONEq(t, srcJSON, dstJSON)
}

func TestImportErrors(t *testing.T) {
	isolateConfig(t)
	store := memory.New()

	before, err := runCLI(t, store, "", "export")
	require.NoError(t, err)

	_, err = runCLI(t, store, "{oops", "import")
	assert.ErrorIs(t, err, importer.ErrInvalidJSON)

	_, err = runCLI(t, store, `{"bikes": [], "serviceRecords": [{"id": "r1", "bikeId": "ghost", "date": "01-2024", "serviceType": "x"}]}`, "import")
	var schemaErr *importer.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "service record 'r1' references unknown bikeId 'ghost'", schemaErr.Reason)

	after, err := runCLI(t, store, "", "export")
	require.NoError(t, err)
	assert.JSONEq(t, before, after)
}

func TestMetricsFile(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "cycles.prom")
	t.Setenv(config.EnvMetricsFile, path)

	_, err := runCLI(t, memory.New(), "", "bike", "add", "Track")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cycles_operations_total{operation="add_bike",result="ok"} 1`)
	assert.Contains(t, string(data), "cycles_bikes 2")
}

func TestConfirmerFor(t *testing.T) {
	root, _ := newRootCmd()

	c, err := confirmerFor(root, true)
	require.NoError(t, err)
	assert.True(t, c.Confirm("anything"))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("YES\n"))
	c, err = confirmerFor(root, false)
	require.NoError(t, err)
	assert.True(t, c.Confirm("Sure?"))
	assert.Equal(t, "Sure? [y/N]: ", out.String())

	root.SetIn(strings.NewReader(""))
	c, err = confirmerFor(root, false)
	require.NoError(t, err)
	assert.False(t, c.Confirm("Sure?"))
}
