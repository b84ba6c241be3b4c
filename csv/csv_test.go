package csv

import (
	csvreader "encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnum-mi/grist-sync-plugin/types"
)

func readCsv(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csvreader.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestMappingCsvClient_Export(t *testing.T) {
	dir := t.TempDir()
	client := NewMappingCsvClient(dir, logrus.New())

	upper := types.NewFieldMapping("Name", "user.name")
	upper.TransformName = "uppercase"
	disabled := types.NewFieldMapping("api_id", "id")
	disabled.Enabled = false

	sample := map[string]any{
		"id":   float64(7),
		"user": map[string]any{"name": "Ada"},
		"tags": []any{"a", "b"},
	}

	err := client.Export([]types.FieldMapping{
		types.NewFieldMapping("Tags", "tags"),
		upper,
		disabled,
		types.NewFieldMapping("Missing", "nope"),
	}, sample)
	require.NoError(t, err)

	rows := readCsv(t, filepath.Join(dir, MappingCsvFileName))
	assert.Equal(t, [][]string{
		{"Destination Column", "Source Field", "Enabled", "Transform", "Sample Value"},
		{"Missing", "nope", "true", "", ""},
		{"Name", "user.name", "true", "uppercase", "Ada"},
		{"Tags", "tags", "true", "", "a;b"},
		{"api_id", "id", "false", "", "7"},
	}, rows)
}

func TestMappingCsvClient_ExportWithoutSample(t *testing.T) {
	dir := t.TempDir()
	client := NewMappingCsvClient(dir, logrus.New())

	require.NoError(t, client.Export([]types.FieldMapping{types.NewFieldMapping("Name", "name")}, nil))
	require.NoError(t, client.Export([]types.FieldMapping{types.NewFieldMapping("Email", "email")}, nil))

	rows := readCsv(t, filepath.Join(dir, MappingCsvFileName))
	assert.Len(t, rows, 2)
	assert.Equal(t, "Email", rows[1][0])
}

func TestMappingCsvClient_ExportMissingFolder(t *testing.T) {
	client := NewMappingCsvClient(filepath.Join(t.TempDir(), "missing"), logrus.New())

	err := client.Export([]types.FieldMapping{types.NewFieldMapping("Name", "name")}, nil)

	assert.Error(t, err)
}
