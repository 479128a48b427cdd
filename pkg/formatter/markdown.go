// Package formatter renders ranking results for humans.
package formatter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/vgasparyan1995/librank/pkg/record"
)

// FormatRankingsAsMarkdown renders ranked rows as a markdown table. Line
// rows get a rank and a value column; record rows get one column per field,
// the union of field names in sorted order.
func FormatRankingsAsMarkdown(result *record.Result) (string, error) {
	if len(result.Rows) == 0 {
		return "", nil
	}

	columns := []string{"rank"}
	if result.Rows[0].Record != nil {
		columns = append(columns, fieldColumns(result.Rows)...)
	} else {
		columns = append(columns, "value")
	}

	var b strings.Builder
	writeRow(&b, columns)
	separator := make([]string, len(columns))
	for i := range separator {
		separator[i] = "---"
	}
	writeRow(&b, separator)

	for _, row := range result.Rows {
		cells := []string{fmt.Sprintf("%d", row.Rank)}
		if row.Record != nil {
			for _, column := range columns[1:] {
				cell, err := cellText(row.Record[column])
				if err != nil {
					return "", err
				}
				cells = append(cells, cell)
			}
		} else {
			cells = append(cells, escapeCell(row.Line))
		}
		writeRow(&b, cells)
	}

	return b.String(), nil
}

// fieldColumns collects the union of field names across all rows.
func fieldColumns(rows []record.RankedRow) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		for name := range row.Record {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			columns = append(columns, name)
		}
	}
	sort.Strings(columns)
	return columns
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

func cellText(value any) (string, error) {
	switch value.(type) {
	case nil:
		return "", nil
	case map[string]any, []any:
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("cannot format cell: %w", err)
		}
		return escapeCell(string(encoded)), nil
	}
	text, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("cannot format cell: %w", err)
	}
	return escapeCell(text), nil
}

var cellEscaper = strings.NewReplacer("|", "\\|", "\n", " ")

func escapeCell(cell string) string {
	return cellEscaper.Replace(cell)
}
