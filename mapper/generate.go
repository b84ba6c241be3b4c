package mapper

import (
	"strings"

	"github.com/dnum-mi/grist-sync-plugin/types"
)

// reservedColumnNames maps well-known API key names to the column they should
// land in. "id" and "manualSort" are reserved by the destination.
var reservedColumnNames = map[string]string{
	"id":         "api_id",
	"manualSort": "api_manualSort",
	"createdAt":  "createdAt",
	"updatedAt":  "updatedAt",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// GenerateMappingsFromAPIData builds one mapping per path of sample.
func GenerateMappingsFromAPIData(sample any, defaultEnabled bool) []types.FieldMapping {
	mappings := []types.FieldMapping{}

	if _, ok := sample.(map[string]any); !ok {
		return mappings
	}

	for _, path := range ExtractAllKeys(sample, "", DefaultMaxDepth) {
		mappings = append(mappings, types.FieldMapping{
			DestinationColumn: ColumnNameForPath(path),
			SourceField:       path,
			Enabled:           defaultEnabled,
		})
	}

	return mappings
}

func ColumnNameForPath(path string) string {
	segments := strings.Split(path, PathSeparator)
	leaf := segments[len(segments)-1]

	if column, ok := reservedColumnNames[leaf]; ok {
		return column
	}

	return strings.ReplaceAll(path, PathSeparator, "_")
}

// SuggestSourceFields returns the paths of sample containing query, ignoring
// case. An empty query returns every path.
func SuggestSourceFields(sample any, query string) []string {
	paths := ExtractAllKeys(sample, "", DefaultMaxDepth)

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return paths
	}

	suggestions := []string{}
	for _, path := range paths {
		if strings.Contains(strings.ToLower(path), query) {
			suggestions = append(suggestions, path)
		}
	}
	return suggestions
}
