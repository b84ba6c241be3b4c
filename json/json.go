package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// IJsonClient stores intermediate payloads (fetched source records, dry-run
// previews) in the working folder.
type IJsonClient interface {
	Export(value any, fileName string) error
	Import(fileName string) (any, error)
}

type JsonClient struct {
	WorkingFolderPath string
	Logger            *logrus.Logger
}

func NewJsonClient(workingFolderPath string, logger *logrus.Logger) *JsonClient {
	return &JsonClient{
		WorkingFolderPath: workingFolderPath,
		Logger:            logger,
	}
}

func (jsonClient *JsonClient) Export(value any, fileName string) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("error during marshal of %s: %w", fileName, err)
	}

	jsonFilePath := filepath.Join(jsonClient.WorkingFolderPath, fileName)
	if err := os.WriteFile(jsonFilePath, payload, 0644); err != nil {
		return fmt.Errorf("error writing file %s: %w", jsonFilePath, err)
	}

	jsonClient.Logger.Infof("JSON written to %s", jsonFilePath)
	return nil
}

func (jsonClient *JsonClient) Import(fileName string) (any, error) {
	jsonFilePath := filepath.Join(jsonClient.WorkingFolderPath, fileName)

	content, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error opening file %s: %w", jsonFilePath, err)
	}

	var payload any
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("error during unmarshal of %s: %w", jsonFilePath, err)
	}
	return payload, nil
}
