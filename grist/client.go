// Package grist talks to the Grist REST API of a single document table:
// record insertion and listing, column listing and creation, and token checks.
package grist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dnum-mi/grist-sync-plugin/diagnosis"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

type IGristClient interface {
	ListColumns(ctx context.Context) ([]types.ColumnDescriptor, error)
	CreateColumns(ctx context.Context, specs []types.ColumnSpec) (*CreateColumnsResponse, error)
	EnsureColumnsExist(ctx context.Context, records []types.DestinationRecord)
	AddRecords(ctx context.Context, records []types.DestinationRecord) (*AddRecordsResponse, error)
	GetRecords(ctx context.Context, limit int) ([]Record, error)
	TestConnection(ctx context.Context) bool
	ValidateAPIToken(ctx context.Context) types.TokenValidation
}

type GristClient struct {
	Config     types.DestinationConfig
	HTTPClient types.HTTPDoer
	Sink       types.LogSink
}

func NewGristClient(config types.DestinationConfig, sink types.LogSink) *GristClient {
	if sink == nil {
		sink = types.NoopLogSink{}
	}

	return &GristClient{
		Config:     config,
		HTTPClient: http.DefaultClient,
		Sink:       sink,
	}
}

func (client *GristClient) tableURL(resource string) string {
	return fmt.Sprintf("%s/api/docs/%s/tables/%s/%s",
		strings.TrimRight(client.Config.APIBaseURL, "/"),
		url.PathEscape(client.Config.DocumentID),
		url.PathEscape(client.Config.TableID),
		resource,
	)
}

func (client *GristClient) newRequest(ctx context.Context, method string, resource string, query url.Values, payload any) (*http.Request, error) {
	endpoint := client.tableURL(resource)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if client.Config.HasToken() {
		req.Header.Set("Authorization", "Bearer "+client.Config.APIToken)
	}

	return req, nil
}

// do sends req and decodes a 2xx JSON body into out. Any other status is
// returned as a *diagnosis.HTTPError carrying the response body.
func (client *GristClient) do(req *http.Request, out any) error {
	resp, err := client.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &diagnosis.HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}
