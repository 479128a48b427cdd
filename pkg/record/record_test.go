package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseLines(t *testing.T) {
	records, err := ParseLines(strings.NewReader("banana\napple\n\ncherry\n"))
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, "banana", records[0].Line)
	assert.Equal(t, "apple", records[1].Line)
	assert.Equal(t, "", records[2].Line, "blank lines are rankable values")
	assert.Equal(t, "cherry", records[3].Line)
}

func Test_ParseLines_NoTrailingNewline(t *testing.T) {
	records, err := ParseLines(strings.NewReader("one\ntwo"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "two", records[1].Line)
}

func Test_ParseLines_Empty(t *testing.T) {
	records, err := ParseLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func Test_ParseJSON_Array(t *testing.T) {
	input := `[{"name":"a","score":2},{"name":"b","score":1}]`
	records, err := ParseJSON(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Fields["name"])
	assert.Equal(t, float64(1), records[1].Fields["score"])
}

func Test_ParseJSON_Lines(t *testing.T) {
	input := "{\"name\":\"a\"}\n\n{\"name\":\"b\"}\n"
	records, err := ParseJSON(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Fields["name"])
	assert.Equal(t, "b", records[1].Fields["name"])
}

func Test_ParseJSON_Empty(t *testing.T) {
	records, err := ParseJSON(strings.NewReader("  \n "))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func Test_ParseJSON_BadLine(t *testing.T) {
	input := "{\"name\":\"a\"}\nnot json\n"
	_, err := ParseJSON(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func Test_ParseJSON_ArrayOfScalars(t *testing.T) {
	_, err := ParseJSON(strings.NewReader("[3, 1, 2]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array of objects")
}
