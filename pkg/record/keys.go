package record

import (
	"fmt"

	"github.com/spf13/cast"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// KeyType selects how a record's key is coerced before comparison.
type KeyType string

const (
	// KeyAuto tries number coercion across all records and falls back to
	// string when any record resists.
	KeyAuto KeyType = "auto"
	// KeyNumber compares keys as float64.
	KeyNumber KeyType = "number"
	// KeyString compares keys as strings, optionally through a collator.
	KeyString KeyType = "string"
)

// ParseKeyType validates a key type name. The empty string means KeyAuto.
func ParseKeyType(s string) (KeyType, error) {
	switch KeyType(s) {
	case "":
		return KeyAuto, nil
	case KeyAuto, KeyNumber, KeyString:
		return KeyType(s), nil
	}
	return "", fmt.Errorf("key type must be 'auto', 'number', or 'string'")
}

// Keyed pairs a record with its extracted ranking key.
type Keyed[K any] struct {
	Record Record
	Key    K
}

// ExtractKeys derives a key from every record up front, so coercion
// failures carry row context and surface before any sorting happens.
func ExtractKeys[K any](records []Record, extract func(Record) (K, error)) ([]Keyed[K], error) {
	keyed := make([]Keyed[K], len(records))
	for i, rec := range records {
		key, err := extract(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		keyed[i] = Keyed[K]{Record: rec, Key: key}
	}
	return keyed, nil
}

// NumberKey extracts the named field from each record and coerces it to
// float64. With an empty field name the raw line is coerced instead.
func NumberKey(field string) func(Record) (float64, error) {
	return func(rec Record) (float64, error) {
		value, err := fieldValue(rec, field)
		if err != nil {
			return 0, err
		}
		number, err := cast.ToFloat64E(value)
		if err != nil {
			return 0, fmt.Errorf("cannot interpret %v as a number: %w", value, err)
		}
		return number, nil
	}
}

// StringKey extracts the named field from each record as a string. With an
// empty field name the raw line is used.
func StringKey(field string) func(Record) (string, error) {
	return func(rec Record) (string, error) {
		value, err := fieldValue(rec, field)
		if err != nil {
			return "", err
		}
		text, err := cast.ToStringE(value)
		if err != nil {
			return "", fmt.Errorf("cannot interpret %v as a string: %w", value, err)
		}
		return text, nil
	}
}

// fieldValue resolves the value a key is derived from: the named field for
// JSON records, or the raw line when no field is named.
func fieldValue(rec Record, field string) (any, error) {
	if field == "" {
		if rec.Fields != nil {
			return nil, fmt.Errorf("a key field is required for JSON records")
		}
		return rec.Line, nil
	}
	if rec.Fields == nil {
		return nil, fmt.Errorf("key field %q requires JSON input", field)
	}
	value, ok := rec.Fields[field]
	if !ok {
		return nil, fmt.Errorf("field %q not found", field)
	}
	return value, nil
}

// CollatorCompare returns a string comparator for the given BCP 47 locale.
// Keys compare and group per that language's collation rules.
func CollatorCompare(locale string) (func(string, string) int, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("cannot parse locale %q: %w", locale, err)
	}
	collator := collate.New(tag)
	return collator.CompareString, nil
}
