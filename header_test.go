package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArrayHeaderNotAHeader(t *testing.T) {
	f := func(name, content string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			_, _, ok, err := parseArrayHeader(content, 1)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	f("quoted key", `"tags": 1`)
	f("plain key value", "name: Alice")
	f("no bracket", "tags")
}

func TestParseArrayHeaderInlinePrimitive(t *testing.T) {
	info, inline, ok, err := parseArrayHeader("tags[2]: reading,gaming", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tags", info.Key)
	assert.True(t, info.HasKey)
	assert.Equal(t, 2, info.Length)
	assert.Equal(t, byte(','), info.Delimiter)
	assert.False(t, info.HasFields)
	assert.Equal(t, "reading,gaming", inline)
}

func TestParseArrayHeaderRootAnonymous(t *testing.T) {
	info, inline, ok, err := parseArrayHeader("[3]: 1,2,3", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, info.HasKey)
	assert.Equal(t, 3, info.Length)
	assert.Equal(t, "1,2,3", inline)
}

func TestParseArrayHeaderLengthMarker(t *testing.T) {
	info, _, ok, err := parseArrayHeader("items[#2]:", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, info.HasLengthMarker)
	assert.Equal(t, 2, info.Length)
}

func TestParseArrayHeaderDelimiterSuffix(t *testing.T) {
	info, _, ok, err := parseArrayHeader("rows[2|]{sku|qty}:", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, byte('|'), info.Delimiter)
	assert.Equal(t, []string{"sku", "qty"}, info.Fields)
}

func TestParseArrayHeaderFieldListWithQuotedField(t *testing.T) {
	info, _, ok, err := parseArrayHeader(`rows[1]{"sku id",qty}:`, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"sku id", "qty"}, info.Fields)
}

func TestParseArrayHeaderMissingColon(t *testing.T) {
	_, _, _, err := parseArrayHeader("tags[2]", 1)
	require.Error(t, err)
	var toonErr *Error
	require.ErrorAs(t, err, &toonErr)
	assert.Equal(t, ErrSyntaxMissingColon, toonErr.Kind)
}

func TestParseArrayHeaderInvalidLength(t *testing.T) {
	_, _, _, err := parseArrayHeader("tags[abc]:", 1)
	require.Error(t, err)
	var toonErr *Error
	require.ErrorAs(t, err, &toonErr)
	assert.Equal(t, ErrSyntaxInvalidHeader, toonErr.Kind)
}

func TestFormatHeaderBracket(t *testing.T) {
	assert.Equal(t, "[2]", formatHeaderBracket(2, ',', false))
	assert.Equal(t, "[#2]", formatHeaderBracket(2, ',', true))
	assert.Equal(t, "[2|]", formatHeaderBracket(2, '|', false))
}
