package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUnquotedChar(t *testing.T) {
	assert.Equal(t, 4, findUnquotedChar("name:value", ':'))
	assert.Equal(t, 5, findUnquotedChar(`"a:b":value`, ':'))
	assert.Equal(t, -1, findUnquotedChar("noColonHere", ':'))
}

func TestFindClosingQuote(t *testing.T) {
	assert.Equal(t, 3, findClosingQuote(`"ab"`, 0))
	assert.Equal(t, 5, findClosingQuote(`"a\"b"x`, 0))
	assert.Equal(t, -1, findClosingQuote(`"unterminated`, 0))
}

func TestParseDelimitedValues(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, parseDelimitedValues("a,b,c", ','))
	assert.Equal(t, []string{"a", `"b, c"`}, parseDelimitedValues(`a,"b, c"`, ','), "quotes are stripped later by parsePrimitiveToken, not here")
	assert.Equal(t, []string{"a", "", "c"}, parseDelimitedValues("a,,c", ','))
	assert.Nil(t, parseDelimitedValues("", ','))
	assert.Equal(t, []string{"a", "b"}, parseDelimitedValues("a\tb", '\t'))
}

func TestTrimSpaces(t *testing.T) {
	assert.Equal(t, "abc", trimSpaces("  abc  "))
	assert.Equal(t, "a\tb", trimSpaces(" a\tb "), "tabs inside a token are structural, not trimmed")
}
