package record

import (
	"cmp"
	"encoding/json"
	"fmt"

	"github.com/vgasparyan1995/librank/pkg/rank"
)

// Options controls how records are keyed and ranked.
type Options struct {
	// Field names the record field the key is derived from. Empty means
	// the raw line.
	Field string
	// KeyType selects number or string comparison. Empty means KeyAuto.
	KeyType KeyType
	// Locale enables collation for string keys (BCP 47 tag, e.g. "da").
	Locale string
	// Reverse ranks in descending key order.
	Reverse bool
	// TopN truncates the output after ranks are assigned. Zero keeps all.
	TopN int
}

// RankedRow is one row of ranked output.
type RankedRow struct {
	Rank   int            `json:"rank"`
	Line   string         `json:"line,omitempty"`
	Record map[string]any `json:"record,omitempty"`
}

// Value returns the row's text without its rank: the compact JSON encoding
// of the record, or the raw line.
func (row RankedRow) Value() string {
	if row.Record != nil {
		if b, err := json.Marshal(row.Record); err == nil {
			return string(b)
		}
	}
	return row.Line
}

// Result holds ranked rows plus the number of distinct keys across the
// whole input, which is also the highest rank assigned.
type Result struct {
	Rows     []RankedRow `json:"rankings"`
	Distinct int         `json:"distinct"`
}

// Rank derives a key from each record, ranks the records densely, and
// returns the rows in rank order. Rows with equal keys share a rank and
// keep their input order.
func Rank(records []Record, opts Options) (*Result, error) {
	rows, err := rankRows(records, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Distinct: distinctRanks(rows)}
	if opts.TopN > 0 && opts.TopN < len(rows) {
		rows = rows[:opts.TopN]
	}
	result.Rows = rows
	return result, nil
}

func rankRows(records []Record, opts Options) ([]RankedRow, error) {
	keyType := opts.KeyType
	if keyType == "" {
		keyType = KeyAuto
	}

	switch keyType {
	case KeyNumber:
		keyed, err := ExtractKeys(records, NumberKey(opts.Field))
		if err != nil {
			return nil, err
		}
		return rankKeyed(keyed, numberCompare(opts)), nil

	case KeyString:
		return rankAsStrings(records, opts)

	case KeyAuto:
		keyed, err := ExtractKeys(records, NumberKey(opts.Field))
		if err == nil {
			return rankKeyed(keyed, numberCompare(opts)), nil
		}
		return rankAsStrings(records, opts)
	}

	return nil, fmt.Errorf("key type must be 'auto', 'number', or 'string'")
}

func rankAsStrings(records []Record, opts Options) ([]RankedRow, error) {
	compare, err := stringCompare(opts)
	if err != nil {
		return nil, err
	}
	keyed, err := ExtractKeys(records, StringKey(opts.Field))
	if err != nil {
		return nil, err
	}
	return rankKeyed(keyed, compare), nil
}

func rankKeyed[K any](keyed []Keyed[K], compare func(K, K) int) []RankedRow {
	ranked := rank.SliceFunc(keyed, func(k Keyed[K]) K { return k.Key }, compare)
	rows := make([]RankedRow, len(ranked))
	for i, r := range ranked {
		rows[i] = RankedRow{
			Rank:   int(r.Rank),
			Line:   r.Item.Record.Line,
			Record: r.Item.Record.Fields,
		}
	}
	return rows
}

func numberCompare(opts Options) func(float64, float64) int {
	compare := cmp.Compare[float64]
	if opts.Reverse {
		compare = rank.Reverse(compare)
	}
	return compare
}

func stringCompare(opts Options) (func(string, string) int, error) {
	compare := cmp.Compare[string]
	if opts.Locale != "" {
		collated, err := CollatorCompare(opts.Locale)
		if err != nil {
			return nil, err
		}
		compare = collated
	}
	if opts.Reverse {
		compare = rank.Reverse(compare)
	}
	return compare, nil
}

// distinctRanks reports the last (highest) rank, which for a dense ranking
// equals the number of distinct keys.
func distinctRanks(rows []RankedRow) int {
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].Rank
}
