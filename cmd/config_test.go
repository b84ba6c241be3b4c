package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnum-mi/grist-sync-plugin/types"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestParsePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)

	t.Run("home", func(t *testing.T) {
		result, err := parsePath("~/testdir/file.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "testdir", "file.txt"), result)
	})

	t.Run("relative", func(t *testing.T) {
		result, err := parsePath("some/relative")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(wd, "some", "relative"), result)
	})

	t.Run("empty", func(t *testing.T) {
		result, err := parsePath("")
		require.NoError(t, err)
		assert.Equal(t, wd, result)
	})
}

func TestDestinationConfig_FromURL(t *testing.T) {
	v := newTestViper()
	v.Set("destination.url", "https://grist.example.com/doc/abc123/p/2")
	v.Set("destination.tableId", "Table1")
	v.Set("destination.apiToken", "secret")

	config, err := destinationConfig(v)

	require.NoError(t, err)
	assert.Equal(t, "abc123", config.DocumentID)
	assert.Equal(t, "https://grist.example.com", config.APIBaseURL)
	assert.Equal(t, "Table1", config.TableID)
	assert.Equal(t, "secret", config.APIToken)
	assert.True(t, config.ShouldAutoCreateColumns())
}

func TestDestinationConfig_ExplicitValuesWin(t *testing.T) {
	v := newTestViper()
	v.Set("destination.url", "https://grist.example.com/doc/abc123")
	v.Set("destination.documentId", "override")
	v.Set("destination.apiBaseUrl", "http://localhost:8484")
	v.Set("destination.tableId", "Table1")
	v.Set("destination.autoCreateColumns", false)

	config, err := destinationConfig(v)

	require.NoError(t, err)
	assert.Equal(t, "override", config.DocumentID)
	assert.Equal(t, "http://localhost:8484", config.APIBaseURL)
	assert.False(t, config.ShouldAutoCreateColumns())
}

func TestDestinationConfig_Errors(t *testing.T) {
	v := newTestViper()
	v.Set("destination.url", "not a url")
	_, err := destinationConfig(v)
	assert.ErrorContains(t, err, "invalid destination URL")

	_, err = destinationConfig(newTestViper())
	assert.EqualError(t, err, "missing destination settings: destination.apiBaseUrl, destination.documentId, destination.tableId")
}

func TestDestinationConfig_FromEnvironment(t *testing.T) {
	t.Setenv("GRIST_SYNC_DESTINATION_APIBASEURL", "https://grist.example.com")
	t.Setenv("GRIST_SYNC_DESTINATION_DOCUMENTID", "doc1")
	t.Setenv("GRIST_SYNC_DESTINATION_TABLEID", "Table1")

	config, err := destinationConfig(newTestViper())

	require.NoError(t, err)
	assert.Equal(t, "doc1", config.DocumentID)
	assert.Equal(t, "Table1", config.TableID)
}

func TestSourceConfig(t *testing.T) {
	v := newTestViper()
	_, err := sourceConfig(v)
	assert.EqualError(t, err, "missing source settings: source.url")

	v.Set("source.url", "https://api.example.com/users")
	v.Set("source.apiKey", "key")
	config, err := sourceConfig(v)

	require.NoError(t, err)
	assert.Equal(t, types.SourceConfig{URL: "https://api.example.com/users", APIKey: "key", AuthHeader: types.DefaultAuthHeader}, config)
}

func TestLoadMappings(t *testing.T) {
	dir := t.TempDir()
	logger := logrus.New()
	v := newTestViper()

	mappings, err := loadMappings(v, dir, logger)
	require.NoError(t, err)
	assert.Nil(t, mappings)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mappings.hcl"), []byte("mapping \"Name\" {\n  source_field = \"user.name\"\n  transform = \"trim\"\n}\n"), 0644))
	v.Set("mappingsFile", "mappings.hcl")

	mappings, err = loadMappings(v, dir, logger)
	require.NoError(t, err)
	assert.Equal(t, []types.FieldMapping{{DestinationColumn: "Name", SourceField: "user.name", Enabled: true, TransformName: "trim"}}, mappings)
}
