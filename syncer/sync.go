package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dnum-mi/grist-sync-plugin/grist"
	"github.com/dnum-mi/grist-sync-plugin/json"
	"github.com/dnum-mi/grist-sync-plugin/mapper"
	"github.com/dnum-mi/grist-sync-plugin/source"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

const PreviewFileName = "preview.json"

var ErrNoValidMappings = errors.New("no enabled, valid mappings to apply")

type Result struct {
	Fetched     int
	Transformed []types.DestinationRecord
	InsertedIDs []int64
	Mappings    []types.FieldMapping
}

type SyncClient struct {
	SourceClient source.ISourceClient
	GristClient  grist.IGristClient
	JsonClient   json.IJsonClient
	DryRun       bool
	Logger       *logrus.Logger
}

func NewSyncClient(sourceClient source.ISourceClient, gristClient grist.IGristClient, jsonClient json.IJsonClient, dryRun bool, logger *logrus.Logger) *SyncClient {
	return &SyncClient{
		SourceClient: sourceClient,
		GristClient:  gristClient,
		JsonClient:   jsonClient,
		DryRun:       dryRun,
		Logger:       logger,
	}
}

// Sync fetches the source records, maps them and inserts them in the
// destination table. With no mappings, mappings are generated from the first
// record. In dry-run mode the mapped records are written to PreviewFileName
// instead of being inserted.
func (syncClient *SyncClient) Sync(ctx context.Context, mappings []types.FieldMapping) (*Result, error) {
	records, err := syncClient.SourceClient.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Fetched: len(records)}
	if len(records) == 0 {
		syncClient.Logger.Warn("Source returned no records, nothing to sync")
		return result, nil
	}

	if len(mappings) == 0 {
		mappings = mapper.GenerateMappingsFromAPIData(records[0], true)
		syncClient.Logger.Infof("Generated %d mapping(s) from the first source record", len(mappings))
	}

	valid := enabledMappings(mapper.GetValidMappings(mappings))
	if len(valid) == 0 {
		return nil, ErrNoValidMappings
	}
	if skipped := len(mappings) - len(valid); skipped > 0 {
		syncClient.Logger.Debugf("Skipping %d disabled or incomplete mapping(s)", skipped)
	}
	result.Mappings = mappings

	result.Transformed = mapper.TransformRecords(records, valid)
	syncClient.Logger.Infof("Mapped %d record(s) onto %d column(s)", len(result.Transformed), len(valid))

	if syncClient.DryRun {
		if err := syncClient.JsonClient.Export(result.Transformed, PreviewFileName); err != nil {
			return nil, fmt.Errorf("error writing dry-run preview: %w", err)
		}
		syncClient.Logger.Info("Dry run: no record was sent to the destination")
		return result, nil
	}

	return syncClient.insert(ctx, result)
}

// SyncFromPreview inserts the records of a previously exported, possibly
// hand-edited, PreviewFileName without fetching the source again.
func (syncClient *SyncClient) SyncFromPreview(ctx context.Context) (*Result, error) {
	payload, err := syncClient.JsonClient.Import(PreviewFileName)
	if err != nil {
		return nil, fmt.Errorf("error reading preview: %w", err)
	}

	records, err := previewRecords(payload)
	if err != nil {
		return nil, err
	}

	result := &Result{Fetched: len(records), Transformed: records}
	if len(records) == 0 {
		syncClient.Logger.Warn("Preview holds no records, nothing to sync")
		return result, nil
	}

	syncClient.Logger.Infof("Read %d record(s) from %s", len(records), PreviewFileName)
	return syncClient.insert(ctx, result)
}

func (syncClient *SyncClient) insert(ctx context.Context, result *Result) (*Result, error) {
	response, err := syncClient.GristClient.AddRecords(ctx, result.Transformed)
	if err != nil {
		return nil, err
	}
	result.InsertedIDs = response.IDs()

	syncClient.Logger.Infof("Synchronized %d record(s)", len(result.InsertedIDs))
	return result, nil
}

func enabledMappings(mappings []types.FieldMapping) []types.FieldMapping {
	enabled := []types.FieldMapping{}
	for _, mapping := range mappings {
		if mapping.Enabled {
			enabled = append(enabled, mapping)
		}
	}
	return enabled
}

// previewRecords accepts the JSON array of objects written by Export.
func previewRecords(payload any) ([]types.DestinationRecord, error) {
	items, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("preview must hold a JSON array of records, got %T", payload)
	}

	records := make([]types.DestinationRecord, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("preview record %d is not an object", i)
		}
		records = append(records, types.DestinationRecord(fields))
	}
	return records, nil
}
