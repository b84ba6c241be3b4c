package hcl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/dnum-mi/grist-sync-plugin/types"
)

type IMappingFileClient interface {
	WriteMappings(mappings []types.FieldMapping, fileName string) error
	ReadMappings(fileName string) ([]types.FieldMapping, error)
}

type MappingFileClient struct {
	WorkingFolderPath string
	Logger            *logrus.Logger
}

func NewMappingFileClient(workingFolderPath string, logger *logrus.Logger) *MappingFileClient {
	return &MappingFileClient{
		WorkingFolderPath: workingFolderPath,
		Logger:            logger,
	}
}

type mappingFile struct {
	Mappings []mappingBlock `hcl:"mapping,block"`
}

type mappingBlock struct {
	DestinationColumn string  `hcl:"destination_column,label"`
	SourceField       string  `hcl:"source_field"`
	Enabled           *bool   `hcl:"enabled,optional"`
	Transform         *string `hcl:"transform,optional"`
}

// WriteMappings stores mappings as HCL blocks:
//
//	mapping "Name" {
//	  source_field = "user.name"
//	  enabled      = true
//	}
//
// Custom transform callables cannot be stored; only TransformName is kept.
func (mappingFileClient *MappingFileClient) WriteMappings(mappings []types.FieldMapping, fileName string) error {
	hclFilePath := mappingFileClient.filePath(fileName)
	hclFile := hclwrite.NewEmptyFile()

	for _, mapping := range mappings {
		if mapping.Transform != nil {
			mappingFileClient.Logger.Warnf("Custom transform on column %s is not saved to %s", mapping.DestinationColumn, fileName)
		}

		block := hclFile.Body().AppendNewBlock("mapping", []string{mapping.DestinationColumn})
		block.Body().SetAttributeValue("source_field", cty.StringVal(mapping.SourceField))
		block.Body().SetAttributeValue("enabled", cty.BoolVal(mapping.Enabled))
		if mapping.TransformName != "" {
			block.Body().SetAttributeValue("transform", cty.StringVal(mapping.TransformName))
		}
		hclFile.Body().AppendNewline()
	}

	if err := os.WriteFile(hclFilePath, hclFile.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing mappings file: %w", err)
	}

	mappingFileClient.Logger.Infof("%d mapping(s) written to %s", len(mappings), hclFilePath)
	return nil
}

func (mappingFileClient *MappingFileClient) ReadMappings(fileName string) ([]types.FieldMapping, error) {
	hclFilePath := mappingFileClient.filePath(fileName)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(hclFilePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("error parsing mappings file %s: %w", hclFilePath, diags)
	}

	var content mappingFile
	if diags := gohcl.DecodeBody(file.Body, nil, &content); diags.HasErrors() {
		return nil, fmt.Errorf("error decoding mappings file %s: %w", hclFilePath, diags)
	}

	mappings := make([]types.FieldMapping, 0, len(content.Mappings))
	for _, block := range content.Mappings {
		mapping := types.NewFieldMapping(block.DestinationColumn, block.SourceField)
		if block.Enabled != nil {
			mapping.Enabled = *block.Enabled
		}
		if block.Transform != nil {
			mapping.TransformName = *block.Transform
		}
		mappings = append(mappings, mapping)
	}

	mappingFileClient.Logger.Debugf("%d mapping(s) read from %s", len(mappings), hclFilePath)
	return mappings, nil
}

func (mappingFileClient *MappingFileClient) filePath(fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(mappingFileClient.WorkingFolderPath, fileName)
}
