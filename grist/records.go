package grist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dnum-mi/grist-sync-plugin/diagnosis"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

var ErrNoRecords = errors.New("no records to add")

type recordFields struct {
	Fields types.DestinationRecord `json:"fields"`
}

type addRecordsPayload struct {
	Records []recordFields `json:"records"`
}

type RecordID struct {
	ID int64 `json:"id"`
}

type AddRecordsResponse struct {
	Records []RecordID `json:"records"`
}

func (response *AddRecordsResponse) IDs() []int64 {
	ids := make([]int64, 0, len(response.Records))
	for _, record := range response.Records {
		ids = append(ids, record.ID)
	}
	return ids
}

type Record struct {
	ID     int64          `json:"id"`
	Fields map[string]any `json:"fields"`
}

type recordsPayload struct {
	Records []Record `json:"records"`
}

// AddRecords inserts records into the table, creating missing columns first
// when enabled. Request failures are returned as *diagnosis.Error. An empty
// batch returns ErrNoRecords as is, without classification or a request.
func (client *GristClient) AddRecords(ctx context.Context, records []types.DestinationRecord) (*AddRecordsResponse, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	if client.Config.ShouldAutoCreateColumns() {
		client.EnsureColumnsExist(ctx, records)
	}

	client.Sink.Log(fmt.Sprintf("Sending %d record(s) to table %s", len(records), client.Config.TableID), types.LogLevelInfo)

	response, err := client.addRecords(ctx, records)
	if err != nil {
		classified := diagnosis.NewError(err, diagnosis.ContextDestination)
		client.Sink.Log(fmt.Sprintf("%s: %s", classified.Diagnosis.Title, classified.Error()), types.LogLevelError)
		return nil, classified
	}

	client.Sink.Log(fmt.Sprintf("%d record(s) added", len(response.Records)), types.LogLevelSuccess)
	return response, nil
}

func (client *GristClient) addRecords(ctx context.Context, records []types.DestinationRecord) (*AddRecordsResponse, error) {
	payload := addRecordsPayload{Records: make([]recordFields, 0, len(records))}
	for _, record := range records {
		payload.Records = append(payload.Records, recordFields{Fields: record})
	}

	req, err := client.newRequest(ctx, http.MethodPost, "records", nil, payload)
	if err != nil {
		return nil, err
	}

	response := &AddRecordsResponse{}
	if err := client.do(req, response); err != nil {
		return nil, err
	}
	return response, nil
}

// GetRecords lists the records of the table. A limit of zero or less fetches
// every record.
func (client *GristClient) GetRecords(ctx context.Context, limit int) ([]Record, error) {
	records, err := client.getRecords(ctx, limit)
	if err != nil {
		return nil, &diagnosis.Error{
			Diagnosis: diagnosis.Classify(err, diagnosis.ContextDestination),
			Cause:     err,
		}
	}
	return records, nil
}

func (client *GristClient) getRecords(ctx context.Context, limit int) ([]Record, error) {
	req, err := client.newRequest(ctx, http.MethodGet, "records", limitQuery(limit), nil)
	if err != nil {
		return nil, err
	}

	var payload recordsPayload
	if err := client.do(req, &payload); err != nil {
		return nil, err
	}
	if payload.Records == nil {
		payload.Records = []Record{}
	}
	return payload.Records, nil
}

// TestConnection reports whether a single record can be read.
func (client *GristClient) TestConnection(ctx context.Context) bool {
	_, err := client.GetRecords(ctx, 1)
	return err == nil
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}
