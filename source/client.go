package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dnum-mi/grist-sync-plugin/diagnosis"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

// envelopeKeys are the object keys searched, in order, for the record array.
var envelopeKeys = []string{"data", "results", "items"}

type ISourceClient interface {
	FetchRecords(ctx context.Context) ([]any, error)
}

type SourceClient struct {
	Config     types.SourceConfig
	HTTPClient types.HTTPDoer
	Logger     *logrus.Logger
}

// NewSourceClient falls back to a default logrus logger when logger is nil.
func NewSourceClient(config types.SourceConfig, logger *logrus.Logger) *SourceClient {
	if logger == nil {
		logger = logrus.New()
	}

	return &SourceClient{
		Config:     config,
		HTTPClient: http.DefaultClient,
		Logger:     logger,
	}
}

// FetchRecords reads the source endpoint and returns its records. Errors are
// returned as *diagnosis.Error.
func (sourceClient *SourceClient) FetchRecords(ctx context.Context) ([]any, error) {
	sourceClient.Logger.Infof("Fetching records from %s", sourceClient.Config.URL)

	body, err := sourceClient.fetch(ctx)
	if err != nil {
		classified := diagnosis.NewError(err, diagnosis.ContextSource)
		sourceClient.Logger.Debugf("Source fetch failed: %v", err)
		return nil, classified
	}

	records := ExtractRecords(body)
	sourceClient.Logger.Infof("Fetched %d record(s)", len(records))
	return records, nil
}

func (sourceClient *SourceClient) fetch(ctx context.Context) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceClient.Config.URL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if sourceClient.Config.APIKey != "" {
		req.Header.Set(sourceClient.Config.AuthHeaderName(), sourceClient.authHeaderValue())
	}

	resp, err := sourceClient.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &diagnosis.HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return payload, nil
}

// authHeaderValue prefixes the key with Bearer for the Authorization header
// unless it already carries a scheme.
func (sourceClient *SourceClient) authHeaderValue() string {
	key := sourceClient.Config.APIKey
	if !strings.EqualFold(sourceClient.Config.AuthHeaderName(), types.DefaultAuthHeader) {
		return key
	}
	if strings.Contains(strings.TrimSpace(key), " ") {
		return key
	}
	return "Bearer " + key
}

// ExtractRecords accepts a bare array, or an object holding the array under
// data, results or items. Anything else is a single record.
func ExtractRecords(body any) []any {
	switch v := body.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range envelopeKeys {
			if records, ok := v[key].([]any); ok {
				return records
			}
		}
	}
	return []any{body}
}
