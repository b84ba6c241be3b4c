package mapper

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dnum-mi/grist-sync-plugin/serializer"
	"github.com/dnum-mi/grist-sync-plugin/types"
)

const (
	TransformUppercase = "uppercase"
	TransformLowercase = "lowercase"
	TransformTrim      = "trim"
	TransformString    = "string"
	TransformNumber    = "number"
	TransformBoolean   = "boolean"
	TransformDate      = "date"
	TransformJSON      = "json"
)

var builtinTransforms = map[string]types.TransformFunc{
	TransformUppercase: stringTransform(strings.ToUpper),
	TransformLowercase: stringTransform(strings.ToLower),
	TransformTrim:      stringTransform(strings.TrimSpace),
	TransformString:    toString,
	TransformNumber:    toNumber,
	TransformBoolean:   toBoolean,
	TransformDate:      toDate,
	TransformJSON:      toJSON,
}

// LookupTransform returns the built-in transform registered under name.
func LookupTransform(name string) (types.TransformFunc, bool) {
	transform, ok := builtinTransforms[strings.ToLower(name)]
	return transform, ok
}

func TransformNames() []string {
	names := make([]string, 0, len(builtinTransforms))
	for name := range builtinTransforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringTransform(fn func(string) string) types.TransformFunc {
	return func(value any) any {
		serialized := serializer.Serialize(value)
		if s, ok := serialized.(string); ok {
			return fn(s)
		}
		return serialized
	}
}

func toString(value any) any {
	serialized := serializer.Serialize(value)
	if serialized == nil {
		return nil
	}
	return fmt.Sprint(serialized)
}

func toNumber(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		if v {
			return float64(1)
		}
		return float64(0)
	case string:
		number, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return number
	}

	serialized := serializer.Serialize(value)
	switch serialized.(type) {
	case string:
		return toNumber(serialized)
	default:
		return serialized
	}
}

func toBoolean(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1", "oui":
			return true
		case "false", "no", "n", "0", "non", "":
			return false
		}
		return nil
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return serializer.Serialize(value)
}

var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func toDate(value any) any {
	switch v := value.(type) {
	case string:
		for _, format := range dateFormats {
			if t, err := time.Parse(format, strings.TrimSpace(v)); err == nil {
				return serializer.FormatTime(t)
			}
		}
		return v
	case float64:
		return serializer.FormatTime(time.UnixMilli(int64(v)))
	}
	return serializer.Serialize(value)
}

func toJSON(value any) any {
	if value == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return serializer.Serialize(value)
	}
	return string(data)
}
