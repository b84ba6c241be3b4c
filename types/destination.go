package types

type DestinationConfig struct {
	DocumentID string
	TableID    string
	APIToken   string
	APIBaseURL string
	// AutoCreateColumns defaults to true when left nil.
	AutoCreateColumns *bool
}

func (config DestinationConfig) ShouldAutoCreateColumns() bool {
	return config.AutoCreateColumns == nil || *config.AutoCreateColumns
}

func (config DestinationConfig) HasToken() bool {
	return config.APIToken != ""
}

type ColumnType string

const (
	ColumnTypeText     ColumnType = "Text"
	ColumnTypeNumeric  ColumnType = "Numeric"
	ColumnTypeInt      ColumnType = "Int"
	ColumnTypeBool     ColumnType = "Bool"
	ColumnTypeDateTime ColumnType = "DateTime"
)

type ColumnDescriptor struct {
	ID    string
	Label string
	Type  ColumnType
}

type ColumnSpec struct {
	ID    string
	Label string
	Type  ColumnType
}

type TokenValidation struct {
	Valid     bool
	Message   string
	NeedsAuth bool
}
