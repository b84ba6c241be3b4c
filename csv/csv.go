package csv

import (
	csvwriter "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/dnum-mi/grist-sync-plugin/mapper"
	"github.com/dnum-mi/grist-sync-plugin/serializer"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

const MappingCsvFileName = "mappings.csv"

type IMappingCsvClient interface {
	Export(mappings []types.FieldMapping, sample any) error
}

type MappingCsvClient struct {
	WorkingFolderPath string
	MappingCsv        *MappingCsv
	Logger            *logrus.Logger
}

type MappingCsv struct {
	Header []string
	Rows   []*MappingCsvRow
}

type MappingCsvRow struct {
	DestinationColumn string
	SourceField       string
	Enabled           bool
	Transform         string
	SampleValue       string
}

func NewMappingCsvClient(workingFolderPath string, logger *logrus.Logger) *MappingCsvClient {
	return &MappingCsvClient{
		WorkingFolderPath: workingFolderPath,
		MappingCsv:        &MappingCsv{Header: []string{"Destination Column", "Source Field", "Enabled", "Transform", "Sample Value"}},
		Logger:            logger,
	}
}

func (csv *MappingCsv) AddRow(row *MappingCsvRow) {
	csv.Rows = append(csv.Rows, row)
}

// Export writes a review sheet of the mappings. Sample values are read from
// sample (usually the first source record) and serialized the way they would
// be sent to the destination.
func (csvClient *MappingCsvClient) Export(mappings []types.FieldMapping, sample any) error {
	csvClient.MappingCsv.Rows = nil

	for _, mapping := range mappings {
		sampleValue := ""
		if sample != nil && mapping.SourceField != "" {
			if value, ok := mapper.GetNestedValue(sample, mapping.SourceField); ok {
				sampleValue = fmt.Sprint(serializer.Serialize(value))
			}
		}

		csvClient.MappingCsv.AddRow(&MappingCsvRow{
			DestinationColumn: mapping.DestinationColumn,
			SourceField:       mapping.SourceField,
			Enabled:           mapping.Enabled,
			Transform:         mapping.TransformName,
			SampleValue:       sampleValue,
		})
	}

	sort.Sort(ByDestinationAndSource(csvClient.MappingCsv.Rows))

	return csvClient.writeCsv()
}

func (csvClient *MappingCsvClient) writeCsv() error {
	csvData := [][]string{csvClient.MappingCsv.Header}
	for _, row := range csvClient.MappingCsv.Rows {
		csvData = append(csvData, []string{
			row.DestinationColumn,
			row.SourceField,
			strconv.FormatBool(row.Enabled),
			row.Transform,
			row.SampleValue,
		})
	}

	csvFilePath := filepath.Join(csvClient.WorkingFolderPath, MappingCsvFileName)
	csvFile, err := os.Create(csvFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer csvFile.Close()

	csvWriter := csvwriter.NewWriter(csvFile)
	if err := csvWriter.WriteAll(csvData); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	csvClient.Logger.Infof("Mappings written to %s", csvFilePath)
	return nil
}

type ByDestinationAndSource []*MappingCsvRow

func (o ByDestinationAndSource) Len() int      { return len(o) }
func (o ByDestinationAndSource) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o ByDestinationAndSource) Less(i, j int) bool {
	if o[i].DestinationColumn != o[j].DestinationColumn {
		return o[i].DestinationColumn < o[j].DestinationColumn
	}
	return o[i].SourceField < o[j].SourceField
}
