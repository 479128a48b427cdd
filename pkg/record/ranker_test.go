package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linesOf(t *testing.T, input string) []Record {
	t.Helper()
	records, err := ParseLines(strings.NewReader(input))
	require.NoError(t, err)
	return records
}

func Test_Rank_AutoPrefersNumbers(t *testing.T) {
	records := linesOf(t, "10\n9\n10\n2")

	result, err := Rank(records, Options{})
	require.NoError(t, err)

	ranks := []int{}
	values := []string{}
	for _, row := range result.Rows {
		ranks = append(ranks, row.Rank)
		values = append(values, row.Line)
	}
	// Numeric order, not lexicographic ("10" would sort before "9").
	assert.Equal(t, []string{"2", "9", "10", "10"}, values)
	assert.Equal(t, []int{1, 2, 3, 3}, ranks)
	assert.Equal(t, 3, result.Distinct)
}

func Test_Rank_AutoFallsBackToStrings(t *testing.T) {
	records := linesOf(t, "pear\napple\npear")

	result, err := Rank(records, Options{})
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, "apple", result.Rows[0].Line)
	assert.Equal(t, 1, result.Rows[0].Rank)
	assert.Equal(t, 2, result.Rows[1].Rank)
	assert.Equal(t, 2, result.Rows[2].Rank)
	assert.Equal(t, 2, result.Distinct)
}

func Test_Rank_RecordsByField(t *testing.T) {
	input := `[
		{"name":"ada","score":410},
		{"name":"bo","score":250},
		{"name":"cy","score":410}
	]`
	records, err := ParseJSON(strings.NewReader(input))
	require.NoError(t, err)

	result, err := Rank(records, Options{Field: "score"})
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, 1, result.Rows[0].Rank)
	assert.Equal(t, "bo", result.Rows[0].Record["name"])
	assert.Equal(t, 2, result.Rows[1].Rank)
	assert.Equal(t, "ada", result.Rows[1].Record["name"], "ties keep input order")
	assert.Equal(t, 2, result.Rows[2].Rank)
	assert.Equal(t, "cy", result.Rows[2].Record["name"])
	assert.Equal(t, 2, result.Distinct)
}

func Test_Rank_MissingField(t *testing.T) {
	input := "{\"score\":1}\n{\"points\":2}\n"
	records, err := ParseJSON(strings.NewReader(input))
	require.NoError(t, err)

	_, err = Rank(records, Options{Field: "score"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), `field "score" not found`)
}

func Test_Rank_Reverse(t *testing.T) {
	records := linesOf(t, "10\n30\n20\n30")

	result, err := Rank(records, Options{Reverse: true})
	require.NoError(t, err)

	values := []string{}
	ranks := []int{}
	for _, row := range result.Rows {
		values = append(values, row.Line)
		ranks = append(ranks, row.Rank)
	}
	assert.Equal(t, []string{"30", "30", "20", "10"}, values)
	assert.Equal(t, []int{1, 1, 2, 3}, ranks)
}

func Test_Rank_TopN(t *testing.T) {
	records := linesOf(t, "5\n1\n4\n2\n3")

	result, err := Rank(records, Options{TopN: 2})
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "1", result.Rows[0].Line)
	assert.Equal(t, "2", result.Rows[1].Line)
	assert.Equal(t, 5, result.Distinct, "distinct counts the whole input")
}

func Test_Rank_Empty(t *testing.T) {
	result, err := Rank(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Zero(t, result.Distinct)
}

func Test_Rank_NumberKeyRejectsText(t *testing.T) {
	records := linesOf(t, "1\nbanana")

	_, err := Rank(records, Options{KeyType: KeyNumber})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "as a number")
}

func Test_Rank_StringKeyWithLocale(t *testing.T) {
	records := linesOf(t, "æble\nzebra")

	result, err := Rank(records, Options{KeyType: KeyString, Locale: "da"})
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "zebra", result.Rows[0].Line)
	assert.Equal(t, "æble", result.Rows[1].Line)
}

func Test_Rank_BadLocale(t *testing.T) {
	records := linesOf(t, "a\nb")

	_, err := Rank(records, Options{KeyType: KeyString, Locale: "not a locale"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse locale")
}

func Test_RankedRow_Value(t *testing.T) {
	line := RankedRow{Rank: 1, Line: "plain"}
	assert.Equal(t, "plain", line.Value())

	row := RankedRow{Rank: 1, Record: map[string]any{"b": 2, "a": 1}}
	assert.Equal(t, `{"a":1,"b":2}`, row.Value())
}
