package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/vgasparyan1995/librank/pkg/formatter"
	"github.com/vgasparyan1995/librank/pkg/record"
)

func printJSONToWriter(w io.Writer, response any) {
	prettyJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		log.Fatalf("cannot format JSON: %v", err)
	}
	fmt.Fprintf(w, "%s\n", prettyJSON)
}

// printRankings writes one row per line as "<rank>\t<value>" in text format,
// the full result as indented JSON, or a markdown table.
func printRankings(w io.Writer, result *record.Result, format string) {
	switch format {
	case "json":
		printJSONToWriter(w, result)
	case "markdown":
		output, err := formatter.FormatRankingsAsMarkdown(result)
		if err != nil {
			log.Fatalf("cannot format markdown: %v", err)
		}
		fmt.Fprint(w, output)
	default:
		for _, row := range result.Rows {
			fmt.Fprintf(w, "%d\t%s\n", row.Rank, row.Value())
		}
	}
}
