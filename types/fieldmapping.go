package types

// TransformFunc converts a raw source value into a destination cell value.
type TransformFunc func(value any) any

type FieldMapping struct {
	DestinationColumn string
	SourceField       string
	Enabled           bool
	// TransformName selects a built-in transform and survives mapping files.
	TransformName string
	// Transform is an in-process callable and takes precedence over TransformName.
	Transform TransformFunc `json:"-"`
}

func NewFieldMapping(destinationColumn string, sourceField string) FieldMapping {
	return FieldMapping{
		DestinationColumn: destinationColumn,
		SourceField:       sourceField,
		Enabled:           true,
	}
}

func (mapping FieldMapping) IsValid() bool {
	return mapping.DestinationColumn != "" && mapping.SourceField != ""
}

// DestinationRecord maps a destination column to a transport-safe scalar.
type DestinationRecord map[string]any
