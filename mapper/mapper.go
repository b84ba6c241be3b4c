// Package mapper turns source records into destination records using a list
// of field mappings, and derives mapping lists from sample records.
package mapper

import (
	"sort"
	"strings"

	"github.com/dnum-mi/grist-sync-plugin/serializer"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

const (
	PathSeparator   = "."
	DefaultMaxDepth = 5
)

// GetNestedValue walks record along a dotted path. The boolean is false when
// an intermediate value is nil or not an object, or a key is absent.
func GetNestedValue(record any, path string) (any, bool) {
	if record == nil {
		return nil, false
	}

	current := record
	for _, segment := range strings.Split(path, PathSeparator) {
		object, ok := current.(map[string]any)
		if !ok || object == nil {
			return nil, false
		}

		value, found := object[segment]
		if !found {
			return nil, false
		}
		current = value
	}

	return current, true
}

// TransformRecord applies every enabled, valid mapping to record. A later
// mapping targeting the same column overwrites an earlier one. A source path
// that does not resolve is stored as nil and sent as JSON null, which
// overwrites the destination column default.
func TransformRecord(record any, mappings []types.FieldMapping) types.DestinationRecord {
	result := types.DestinationRecord{}

	for _, mapping := range mappings {
		if !mapping.IsValid() || !mapping.Enabled {
			continue
		}

		value, _ := GetNestedValue(record, mapping.SourceField)
		result[mapping.DestinationColumn] = applyTransform(mapping, value)
	}

	return result
}

func TransformRecords(records []any, mappings []types.FieldMapping) []types.DestinationRecord {
	result := make([]types.DestinationRecord, 0, len(records))
	for _, record := range records {
		result = append(result, TransformRecord(record, mappings))
	}
	return result
}

func applyTransform(mapping types.FieldMapping, value any) any {
	if mapping.Transform != nil {
		return mapping.Transform(value)
	}

	if mapping.TransformName != "" {
		if transform, ok := LookupTransform(mapping.TransformName); ok {
			return transform(value)
		}
	}

	return serializer.Serialize(value)
}

// ExtractAllKeys lists the dotted path of every key in record, depth first.
// Objects are expanded up to maxDepth levels; arrays are leaves. Keys are
// visited in lexical order.
func ExtractAllKeys(record any, prefix string, maxDepth int) []string {
	keys := []string{}

	object, ok := record.(map[string]any)
	if !ok || maxDepth <= 0 {
		return keys
	}

	for _, key := range sortedKeys(object) {
		path := key
		if prefix != "" {
			path = prefix + PathSeparator + key
		}
		keys = append(keys, path)

		if child, isObject := object[key].(map[string]any); isObject && maxDepth > 1 {
			keys = append(keys, ExtractAllKeys(child, path, maxDepth-1)...)
		}
	}

	return keys
}

func sortedKeys(object map[string]any) []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func IsValidMapping(mapping types.FieldMapping) bool {
	return mapping.IsValid()
}

// GetValidMappings keeps mappings with both sides set, enabled or not.
func GetValidMappings(mappings []types.FieldMapping) []types.FieldMapping {
	valid := []types.FieldMapping{}
	for _, mapping := range mappings {
		if IsValidMapping(mapping) {
			valid = append(valid, mapping)
		}
	}
	return valid
}
