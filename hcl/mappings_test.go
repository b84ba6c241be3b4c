package hcl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnum-mi/grist-sync-plugin/types"
)

func TestMappingFileClient_RoundTrip(t *testing.T) {
	logger := logrus.New()
	client := NewMappingFileClient(t.TempDir(), logger)

	upper := types.NewFieldMapping("Name", "user.name")
	upper.TransformName = "uppercase"
	disabled := types.NewFieldMapping("api_id", "id")
	disabled.Enabled = false
	custom := types.NewFieldMapping("Email", "email")
	custom.Transform = func(value any) any { return value }

	require.NoError(t, client.WriteMappings([]types.FieldMapping{upper, disabled, custom}, "mappings.hcl"))

	mappings, err := client.ReadMappings("mappings.hcl")
	require.NoError(t, err)

	assert.Equal(t, []types.FieldMapping{
		{DestinationColumn: "Name", SourceField: "user.name", Enabled: true, TransformName: "uppercase"},
		{DestinationColumn: "api_id", SourceField: "id", Enabled: false},
		{DestinationColumn: "Email", SourceField: "email", Enabled: true},
	}, mappings)
}

func TestMappingFileClient_WrittenFormat(t *testing.T) {
	dir := t.TempDir()
	client := NewMappingFileClient(dir, logrus.New())

	require.NoError(t, client.WriteMappings([]types.FieldMapping{types.NewFieldMapping("Name", "user.name")}, "mappings.hcl"))

	content, err := os.ReadFile(filepath.Join(dir, "mappings.hcl"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `mapping "Name" {`)
	assert.Contains(t, string(content), `"user.name"`)
}

func TestMappingFileClient_ReadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mappings.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
mapping "Email" {
  source_field = "contact.email"
}
`), 0644))

	mappings, err := NewMappingFileClient("/unused", logrus.New()).ReadMappings(path)

	require.NoError(t, err)
	assert.Equal(t, []types.FieldMapping{{DestinationColumn: "Email", SourceField: "contact.email", Enabled: true}}, mappings)
}

func TestMappingFileClient_ReadErrors(t *testing.T) {
	dir := t.TempDir()
	client := NewMappingFileClient(dir, logrus.New())

	_, err := client.ReadMappings("missing.hcl")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.hcl"), []byte(`mapping "A" {`), 0644))
	_, err = client.ReadMappings("broken.hcl")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "nofield.hcl"), []byte("mapping \"A\" {\n  enabled = true\n}\n"), 0644))
	_, err = client.ReadMappings("nofield.hcl")
	assert.Error(t, err)
}
