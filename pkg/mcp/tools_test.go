package mcp

import (
	"context"
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, handler func(context.Context, mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error), args map[string]any) *mcptypes.CallToolResult {
	t.Helper()
	req := mcptypes.CallToolRequest{}
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcptypes.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcptypes.TextContent)
	require.True(t, ok, "expected text content")
	return content.Text
}

func Test_RankLinesTool(t *testing.T) {
	tool := NewToolBuilder().buildRankLinesTool()

	result := callTool(t, tool.Handler, map[string]any{
		"lines": "10\n20\n10\n30\n20\n10",
	})
	require.False(t, result.IsError)

	expected := `{
		"rankings": [
			{"rank": 1, "line": "10"},
			{"rank": 1, "line": "10"},
			{"rank": 1, "line": "10"},
			{"rank": 2, "line": "20"},
			{"rank": 2, "line": "20"},
			{"rank": 3, "line": "30"}
		],
		"distinct": 3
	}`
	assert.JSONEq(t, expected, resultText(t, result))
}

func Test_RankLinesTool_TopN(t *testing.T) {
	tool := NewToolBuilder().buildRankLinesTool()

	result := callTool(t, tool.Handler, map[string]any{
		"lines": "5\n1\n4\n2\n3",
		"top_n": 2,
	})
	require.False(t, result.IsError)

	expected := `{
		"rankings": [
			{"rank": 1, "line": "1"},
			{"rank": 2, "line": "2"}
		],
		"distinct": 5
	}`
	assert.JSONEq(t, expected, resultText(t, result))
}

func Test_RankLinesTool_MissingLines(t *testing.T) {
	tool := NewToolBuilder().buildRankLinesTool()
	result := callTool(t, tool.Handler, map[string]any{})
	assert.True(t, result.IsError)
}

func Test_RankLinesTool_BadKeyType(t *testing.T) {
	tool := NewToolBuilder().buildRankLinesTool()
	result := callTool(t, tool.Handler, map[string]any{
		"lines":    "a\nb",
		"key_type": "ordinal",
	})
	assert.True(t, result.IsError)
}

func Test_RankRecordsTool(t *testing.T) {
	tool := NewToolBuilder().buildRankRecordsTool()

	result := callTool(t, tool.Handler, map[string]any{
		"records": `[{"name":"ada","score":410},{"name":"bo","score":250},{"name":"cy","score":410}]`,
		"key":     "score",
	})
	require.False(t, result.IsError)

	expected := `{
		"rankings": [
			{"rank": 1, "record": {"name": "bo", "score": 250}},
			{"rank": 2, "record": {"name": "ada", "score": 410}},
			{"rank": 2, "record": {"name": "cy", "score": 410}}
		],
		"distinct": 2
	}`
	assert.JSONEq(t, expected, resultText(t, result))
}

func Test_RankRecordsTool_RequiresKey(t *testing.T) {
	tool := NewToolBuilder().buildRankRecordsTool()
	result := callTool(t, tool.Handler, map[string]any{
		"records": `[{"score":1}]`,
	})
	assert.True(t, result.IsError)
}

func Test_RankRecordsTool_BadPayload(t *testing.T) {
	tool := NewToolBuilder().buildRankRecordsTool()
	result := callTool(t, tool.Handler, map[string]any{
		"records": "not json",
		"key":     "score",
	})
	assert.True(t, result.IsError)
}
