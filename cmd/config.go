package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/dnum-mi/grist-sync-plugin/grist"
	"github.com/dnum-mi/grist-sync-plugin/hcl"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

// parsePath expands a leading ~/ and makes path absolute.
func parsePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error resolving home directory: %w", err)
		}
		path = filepath.Join(dirname, path[2:])
	}

	return filepath.Abs(path)
}

// destinationConfig reads the destination.* keys. destination.url fills in the
// document ID and API base URL when they are not set explicitly.
func destinationConfig(v *viper.Viper) (types.DestinationConfig, error) {
	config := types.DestinationConfig{
		DocumentID: v.GetString("destination.documentId"),
		TableID:    v.GetString("destination.tableId"),
		APIToken:   v.GetString("destination.apiToken"),
		APIBaseURL: v.GetString("destination.apiBaseUrl"),
	}

	if rawURL := v.GetString("destination.url"); rawURL != "" {
		parsed := grist.ParseURL(rawURL)
		if !parsed.IsValid() {
			return config, fmt.Errorf("invalid destination URL %q: expected https://<host>/doc/<documentId>", rawURL)
		}
		if config.DocumentID == "" {
			config.DocumentID = parsed.DocumentID
		}
		if config.APIBaseURL == "" {
			config.APIBaseURL = parsed.APIBaseURL
		}
	}

	autoCreateColumns := v.GetBool("destination.autoCreateColumns")
	config.AutoCreateColumns = &autoCreateColumns

	var missing []string
	if config.APIBaseURL == "" {
		missing = append(missing, "destination.apiBaseUrl")
	}
	if config.DocumentID == "" {
		missing = append(missing, "destination.documentId")
	}
	if config.TableID == "" {
		missing = append(missing, "destination.tableId")
	}
	if len(missing) > 0 {
		return config, fmt.Errorf("missing destination settings: %s", strings.Join(missing, ", "))
	}

	return config, nil
}

func sourceConfig(v *viper.Viper) (types.SourceConfig, error) {
	config := types.SourceConfig{
		URL:        v.GetString("source.url"),
		APIKey:     v.GetString("source.apiKey"),
		AuthHeader: v.GetString("source.authHeader"),
	}

	if config.URL == "" {
		return config, errors.New("missing source settings: source.url")
	}
	return config, nil
}

// loadMappings returns nil when no mapping file is configured.
func loadMappings(v *viper.Viper, workingFolderPath string, logger *logrus.Logger) ([]types.FieldMapping, error) {
	mappingsFile := v.GetString("mappingsFile")
	if mappingsFile == "" {
		return nil, nil
	}

	if strings.HasPrefix(mappingsFile, "~/") {
		resolved, err := parsePath(mappingsFile)
		if err != nil {
			return nil, err
		}
		mappingsFile = resolved
	}

	return hcl.NewMappingFileClient(workingFolderPath, logger).ReadMappings(mappingsFile)
}
