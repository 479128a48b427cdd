package mcp

import (
	"context"
	"fmt"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/vgasparyan1995/librank/pkg/record"
)

const (
	ToolRankLines   = "librank_rank_lines"
	ToolRankRecords = "librank_rank_records"
)

// ToolBuilder wires ranking operations into MCP tool handlers.
type ToolBuilder struct{}

// NewToolBuilder creates a builder for the ranking tools.
func NewToolBuilder() ToolBuilder {
	return ToolBuilder{}
}

// BuildTools constructs the requested tools in the order provided.
func (b ToolBuilder) BuildTools(toolNames []string) ([]mcpserver.ServerTool, error) {
	factories := map[string]func() mcpserver.ServerTool{
		ToolRankLines:   b.buildRankLinesTool,
		ToolRankRecords: b.buildRankRecordsTool,
	}

	var tools []mcpserver.ServerTool
	for _, name := range toolNames {
		factory, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool: %s", name)
		}
		tools = append(tools, factory())
	}
	return tools, nil
}

func (b ToolBuilder) buildRankLinesTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolRankLines,
			mcptypes.WithDescription("Rank newline-separated values densely: equal values share a rank, and the next distinct value takes the next integer, with no gaps"),
			mcptypes.WithString("lines",
				mcptypes.Description("Values to rank, one per line"),
				mcptypes.Required(),
			),
			mcptypes.WithString("key_type",
				mcptypes.Description("Key coercion: auto, number, or string"),
				mcptypes.DefaultString("auto"),
			),
			mcptypes.WithString("locale",
				mcptypes.Description("BCP 47 locale for string keys (e.g. da, de-DE)"),
				mcptypes.DefaultString(""),
			),
			mcptypes.WithBoolean("reverse",
				mcptypes.Description("Rank in descending key order"),
				mcptypes.DefaultBool(false),
			),
			mcptypes.WithNumber("top_n",
				mcptypes.Description("Number of top rows to return (0 for all)"),
				mcptypes.DefaultNumber(0),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			lines := req.GetString("lines", "")
			if lines == "" {
				return mcptypes.NewToolResultError("lines is required"), nil
			}

			records, err := record.ParseLines(strings.NewReader(lines))
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot read lines", err), nil
			}

			opts, err := rankOptions(req, "")
			if err != nil {
				return mcptypes.NewToolResultError(err.Error()), nil
			}

			result, err := record.Rank(records, opts)
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot rank lines", err), nil
			}
			return mcptypes.NewToolResultJSON(result)
		},
	}
}

func (b ToolBuilder) buildRankRecordsTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolRankRecords,
			mcptypes.WithDescription("Rank JSON records densely by a field: records with equal keys share a rank and keep their input order"),
			mcptypes.WithString("records",
				mcptypes.Description("Records to rank: a JSON array of objects, or one JSON object per line"),
				mcptypes.Required(),
			),
			mcptypes.WithString("key",
				mcptypes.Description("Field to derive the ranking key from"),
				mcptypes.Required(),
			),
			mcptypes.WithString("key_type",
				mcptypes.Description("Key coercion: auto, number, or string"),
				mcptypes.DefaultString("auto"),
			),
			mcptypes.WithString("locale",
				mcptypes.Description("BCP 47 locale for string keys (e.g. da, de-DE)"),
				mcptypes.DefaultString(""),
			),
			mcptypes.WithBoolean("reverse",
				mcptypes.Description("Rank in descending key order"),
				mcptypes.DefaultBool(false),
			),
			mcptypes.WithNumber("top_n",
				mcptypes.Description("Number of top rows to return (0 for all)"),
				mcptypes.DefaultNumber(0),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			payload := req.GetString("records", "")
			if strings.TrimSpace(payload) == "" {
				return mcptypes.NewToolResultError("records is required"), nil
			}

			field := strings.TrimSpace(req.GetString("key", ""))
			if field == "" {
				return mcptypes.NewToolResultError("key is required"), nil
			}

			records, err := record.ParseJSON(strings.NewReader(payload))
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot parse records", err), nil
			}

			opts, err := rankOptions(req, field)
			if err != nil {
				return mcptypes.NewToolResultError(err.Error()), nil
			}

			result, err := record.Rank(records, opts)
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot rank records", err), nil
			}
			return mcptypes.NewToolResultJSON(result)
		},
	}
}

func rankOptions(req mcptypes.CallToolRequest, field string) (record.Options, error) {
	keyType, err := record.ParseKeyType(req.GetString("key_type", "auto"))
	if err != nil {
		return record.Options{}, err
	}
	return record.Options{
		Field:   field,
		KeyType: keyType,
		Locale:  strings.TrimSpace(req.GetString("locale", "")),
		Reverse: req.GetBool("reverse", false),
		TopN:    req.GetInt("top_n", 0),
	}, nil
}
