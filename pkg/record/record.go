// Package record models the rows the librank tool ranks: plain text lines
// or JSON objects, plus key extraction and ranking over both.
package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Record is one input row. Line holds the raw text of the row; Fields is
// set when the row was parsed from JSON.
type Record struct {
	Line   string
	Fields map[string]any
}

// ParseLines reads one record per line. Blank lines are kept, since a blank
// line is still a rankable value.
func ParseLines(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		records = append(records, Record{Line: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}
	return records, nil
}

// ParseJSON reads records from either a JSON array of objects or
// newline-delimited JSON objects (JSON Lines).
func ParseJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		return parseJSONArray(trimmed)
	}
	return parseJSONLines(trimmed)
}

func parseJSONArray(data string) ([]Record, error) {
	var objects []map[string]any
	if err := json.Unmarshal([]byte(data), &objects); err != nil {
		return nil, fmt.Errorf("cannot parse JSON array of objects: %w", err)
	}
	records := make([]Record, len(objects))
	for i, object := range objects {
		records[i] = Record{Fields: object}
	}
	return records, nil
}

func parseJSONLines(data string) ([]Record, error) {
	var records []Record
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var object map[string]any
		if err := json.Unmarshal([]byte(line), &object); err != nil {
			return nil, fmt.Errorf("cannot parse JSON object on line %d: %w", i+1, err)
		}
		records = append(records, Record{Fields: object})
	}
	return records, nil
}
