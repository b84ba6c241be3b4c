// Package serializer flattens arbitrary values into scalars a destination
// cell can hold.
package serializer

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

const (
	ISOTimeFormat = "2006-01-02T15:04:05.000Z07:00"
	ListSeparator = ";"
)

var timeType = reflect.TypeOf(time.Time{})

// Serialize converts value into a string, number, boolean or nil.
//
// Times become ISO-8601 strings, maps and structs become JSON text and
// sequences are joined with ";" after serializing each element. Scalars are
// returned unchanged.
func Serialize(value any) any {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		return FormatTime(v)
	case json.Number:
		return v
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	if rv.Type() == timeType {
		return FormatTime(rv.Interface().(time.Time))
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return joinSequence(rv)
	case reflect.Map, reflect.Struct:
		return toJSON(rv.Interface())
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.Interface()
	default:
		return fmt.Sprint(rv.Interface())
	}
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOTimeFormat)
}

func joinSequence(rv reflect.Value) string {
	if rv.Len() == 0 {
		return ""
	}

	parts := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		parts = append(parts, elementString(rv.Index(i).Interface()))
	}

	return strings.Join(parts, ListSeparator)
}

func elementString(element any) string {
	if element == nil {
		return "null"
	}

	if t, ok := element.(time.Time); ok {
		return FormatTime(t)
	}

	rv := reflect.ValueOf(element)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "null"
		}
		rv = rv.Elem()
	}

	if rv.Type() == timeType {
		return FormatTime(rv.Interface().(time.Time))
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return toJSON(rv.Interface())
	default:
		return fmt.Sprint(rv.Interface())
	}
}

func toJSON(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}
