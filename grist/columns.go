package grist

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/dnum-mi/grist-sync-plugin/types"
)

// typeInferenceWindow is the number of records inspected per column.
const typeInferenceWindow = 10

var datePrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

type columnFields struct {
	ColID string           `json:"colId,omitempty"`
	Label string           `json:"label,omitempty"`
	Type  types.ColumnType `json:"type,omitempty"`
}

type column struct {
	ID     string       `json:"id"`
	Fields columnFields `json:"fields"`
}

type columnsPayload struct {
	Columns []column `json:"columns"`
}

type CreatedColumn struct {
	ID string `json:"id"`
}

type CreateColumnsResponse struct {
	Columns []CreatedColumn `json:"columns"`
}

func (client *GristClient) ListColumns(ctx context.Context) ([]types.ColumnDescriptor, error) {
	req, err := client.newRequest(ctx, http.MethodGet, "columns", nil, nil)
	if err != nil {
		return nil, err
	}

	var payload columnsPayload
	if err := client.do(req, &payload); err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	columns := make([]types.ColumnDescriptor, 0, len(payload.Columns))
	for _, c := range payload.Columns {
		columns = append(columns, types.ColumnDescriptor{
			ID:    c.ID,
			Label: c.Fields.Label,
			Type:  c.Fields.Type,
		})
	}
	return columns, nil
}

// CreateColumns adds columns to the table. Type defaults to Text and label to
// the column ID.
func (client *GristClient) CreateColumns(ctx context.Context, specs []types.ColumnSpec) (*CreateColumnsResponse, error) {
	if len(specs) == 0 {
		return &CreateColumnsResponse{Columns: []CreatedColumn{}}, nil
	}

	payload := columnsPayload{Columns: make([]column, 0, len(specs))}
	for _, spec := range specs {
		columnType := spec.Type
		if columnType == "" {
			columnType = types.ColumnTypeText
		}
		label := spec.Label
		if label == "" {
			label = spec.ID
		}
		payload.Columns = append(payload.Columns, column{
			ID:     spec.ID,
			Fields: columnFields{ColID: spec.ID, Label: label, Type: columnType},
		})
	}

	req, err := client.newRequest(ctx, http.MethodPost, "columns", nil, payload)
	if err != nil {
		return nil, err
	}

	response := &CreateColumnsResponse{}
	if err := client.do(req, response); err != nil {
		return nil, fmt.Errorf("failed to create columns: %w", err)
	}
	return response, nil
}

// EnsureColumnsExist creates the columns used by records that the table does
// not have yet. Failures are logged as warnings and never returned: the
// caller may lack the right to manage columns yet still insert rows.
func (client *GristClient) EnsureColumnsExist(ctx context.Context, records []types.DestinationRecord) {
	if err := client.ensureColumnsExist(ctx, records); err != nil {
		client.Sink.Log(fmt.Sprintf("Could not check or create columns, continuing with existing columns: %v", err), types.LogLevelWarning)
	}
}

func (client *GristClient) ensureColumnsExist(ctx context.Context, records []types.DestinationRecord) error {
	existing, err := client.ListColumns(ctx)
	if err != nil {
		return err
	}

	existingIDs := make(map[string]bool, len(existing))
	for _, c := range existing {
		existingIDs[c.ID] = true
	}

	missing := []string{}
	for _, key := range recordKeys(records) {
		if !existingIDs[key] {
			missing = append(missing, key)
		}
	}

	if len(missing) == 0 {
		client.Sink.Log("All columns already exist", types.LogLevelInfo)
		return nil
	}

	specs := make([]types.ColumnSpec, 0, len(missing))
	for _, key := range missing {
		specs = append(specs, types.ColumnSpec{ID: key, Label: key, Type: InferColumnType(records, key)})
	}

	client.Sink.Log(fmt.Sprintf("Creating %d missing column(s): %s", len(missing), strings.Join(missing, ", ")), types.LogLevelInfo)
	if _, err := client.CreateColumns(ctx, specs); err != nil {
		return err
	}
	client.Sink.Log(fmt.Sprintf("Created %d column(s)", len(missing)), types.LogLevelSuccess)
	return nil
}

// recordKeys returns the distinct keys of records, sorted.
func recordKeys(records []types.DestinationRecord) []string {
	seen := map[string]bool{}
	keys := []string{}
	for _, record := range records {
		for key := range record {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// InferColumnType derives a column type from the first non-nil value of key
// among the first records.
func InferColumnType(records []types.DestinationRecord, key string) types.ColumnType {
	for i, record := range records {
		if i >= typeInferenceWindow {
			break
		}

		value, ok := record[key]
		if !ok || value == nil {
			continue
		}

		if isNumber, isInteger := classifyNumber(value); isNumber {
			if isInteger {
				return types.ColumnTypeInt
			}
			return types.ColumnTypeNumeric
		}

		switch v := value.(type) {
		case bool:
			return types.ColumnTypeBool
		case string:
			if datePrefixPattern.MatchString(v) {
				return types.ColumnTypeDateTime
			}
		}
		return types.ColumnTypeText
	}

	return types.ColumnTypeText
}

func classifyNumber(value any) (isNumber bool, isInteger bool) {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true, true
	case float32:
		return true, isWhole(float64(v))
	case float64:
		return true, isWhole(v)
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return true, true
		}
		if f, err := v.Float64(); err == nil {
			return true, isWhole(f)
		}
	}
	return false, false
}

func isWhole(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
}
