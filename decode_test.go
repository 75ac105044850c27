package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSimpleObject(t *testing.T) {
	v, err := Decode("name: Alice\nage: 30\nactive: true\n", DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())

	name, ok := v.Object().Get("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name.Str())

	age, _ := v.Object().Get("age")
	assert.Equal(t, float64(30), age.Number())

	assert.Equal(t, []string{"name", "age", "active"}, v.Object().Keys())
}

func TestDecodeNestedObject(t *testing.T) {
	input := "user:\n  name: Bob\n  address:\n    city: NYC\n"
	v, err := Decode(input, DecodeOptions{})
	require.NoError(t, err)

	user, ok := v.Object().Get("user")
	require.True(t, ok)
	name, _ := user.Object().Get("name")
	assert.Equal(t, "Bob", name.Str())

	addr, _ := user.Object().Get("address")
	city, _ := addr.Object().Get("city")
	assert.Equal(t, "NYC", city.Str())
}

func TestDecodeEmptyNestedObject(t *testing.T) {
	v, err := Decode("meta:\nother: 1\n", DecodeOptions{})
	require.NoError(t, err)
	meta, ok := v.Object().Get("meta")
	require.True(t, ok)
	assert.Equal(t, KindObject, meta.Kind())
	assert.Equal(t, 0, meta.Object().Len())
}

func TestDecodeInlinePrimitiveArray(t *testing.T) {
	v, err := Decode("tags[2]: reading,gaming\n", DecodeOptions{})
	require.NoError(t, err)
	tags, ok := v.Object().Get("tags")
	require.True(t, ok)
	require.Equal(t, KindArray, tags.Kind())
	require.Len(t, tags.Array(), 2)
	assert.Equal(t, "reading", tags.Array()[0].Str())
	assert.Equal(t, "gaming", tags.Array()[1].Str())
}

func TestDecodeEmptyArray(t *testing.T) {
	v, err := Decode("tags[0]:\n", DecodeOptions{})
	require.NoError(t, err)
	tags, _ := v.Object().Get("tags")
	assert.Equal(t, KindArray, tags.Kind())
	assert.Len(t, tags.Array(), 0)
}

func TestDecodeTabularArray(t *testing.T) {
	input := "items[2]{sku,qty}:\n  A1,2\n  B2,5\n"
	v, err := Decode(input, DecodeOptions{})
	require.NoError(t, err)

	items, ok := v.Object().Get("items")
	require.True(t, ok)
	require.Len(t, items.Array(), 2)

	row0 := items.Array()[0].Object()
	sku, _ := row0.Get("sku")
	qty, _ := row0.Get("qty")
	assert.Equal(t, "A1", sku.Str())
	assert.Equal(t, float64(2), qty.Number())
}

func TestDecodeListArrayOfPrimitives(t *testing.T) {
	input := "values[3]:\n  - 1\n  - 2\n  - 3\n"
	v, err := Decode(input, DecodeOptions{})
	require.NoError(t, err)
	values, _ := v.Object().Get("values")
	require.Len(t, values.Array(), 3)
	assert.Equal(t, float64(1), values.Array()[0].Number())
}

func TestDecodeListArrayOfObjects(t *testing.T) {
	input := "people[2]:\n  - name: Alice\n    age: 30\n  - name: Bob\n    age: 25\n"
	v, err := Decode(input, DecodeOptions{})
	require.NoError(t, err)
	people, _ := v.Object().Get("people")
	require.Len(t, people.Array(), 2)

	first := people.Array()[0].Object()
	name, _ := first.Get("name")
	age, _ := first.Get("age")
	assert.Equal(t, "Alice", name.Str())
	assert.Equal(t, float64(30), age.Number())
}

func TestDecodeRootArray(t *testing.T) {
	v, err := Decode("[3]: a,b,c\n", DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, KindArray, v.Kind())
	assert.Len(t, v.Array(), 3)
}

func TestDecodeScalarRoot(t *testing.T) {
	v, err := Decode("42\n", DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, float64(42), v.Number())
}

func TestDecodeLengthMismatch(t *testing.T) {
	_, err := Decode("tags[3]: a,b\n", DecodeOptions{})
	require.Error(t, err)
	var toonErr *Error
	require.ErrorAs(t, err, &toonErr)
	assert.Equal(t, ErrLengthMismatch, toonErr.Kind)
}

func TestDecodeTabularWidthMismatch(t *testing.T) {
	input := "items[1]{sku,qty}:\n  A1\n"
	_, err := Decode(input, DecodeOptions{})
	require.Error(t, err)
	var toonErr *Error
	require.ErrorAs(t, err, &toonErr)
	assert.Equal(t, ErrTabularWidthMismatch, toonErr.Kind)
}

func TestDecodeDelimiterMismatch(t *testing.T) {
	// Header declares a tab delimiter but the row is comma-joined, so
	// splitting on tab yields a single merged token against 2 declared
	// fields — the width-only signature of a wrong delimiter.
	input := "items[1\t]{sku\tqty}:\n  A1,2\n"
	_, err := Decode(input, DecodeOptions{})
	require.Error(t, err)
	var toonErr *Error
	require.ErrorAs(t, err, &toonErr)
	assert.Equal(t, ErrDelimiterMismatch, toonErr.Kind)
}

func TestDecodeUnterminatedQuotedString(t *testing.T) {
	_, err := Decode(`name: "unterminated`+"\n", DecodeOptions{})
	require.Error(t, err)
	var toonErr *Error
	require.ErrorAs(t, err, &toonErr)
	assert.Equal(t, ErrSyntaxUnterminatedString, toonErr.Kind)
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode("", DecodeOptions{})
	require.Error(t, err)
	var toonErr *Error
	require.ErrorAs(t, err, &toonErr)
	assert.Equal(t, ErrEmptyInput, toonErr.Kind)
}

func TestDecodeStrictBlankLineInArrayRejected(t *testing.T) {
	input := "values[2]:\n  - 1\n\n  - 2\n"
	_, err := Decode(input, DecodeOptions{})
	require.Error(t, err)
	var toonErr *Error
	require.ErrorAs(t, err, &toonErr)
	assert.Equal(t, ErrStrictBlankInArray, toonErr.Kind)
}

func TestDecodeNonStrictToleratesBlankLineInArray(t *testing.T) {
	input := "values[2]:\n  - 1\n\n  - 2\n"
	v, err := Decode(input, NonStrict())
	require.NoError(t, err)
	values, _ := v.Object().Get("values")
	assert.Len(t, values.Array(), 2)
}

func TestDecodeNestedArrayListItem(t *testing.T) {
	input := "matrix[2]:\n  - [2]: 1,2\n  - [2]: 3,4\n"
	v, err := Decode(input, DecodeOptions{})
	require.NoError(t, err)
	matrix, _ := v.Object().Get("matrix")
	require.Len(t, matrix.Array(), 2)
	row0 := matrix.Array()[0]
	require.Equal(t, KindArray, row0.Kind())
	assert.Equal(t, float64(1), row0.Array()[0].Number())
}

func TestDecodeKeyedArrayHeaderBodyAsFirstFieldOfListItem(t *testing.T) {
	// When the first field's array header opens its own multi-line body
	// (here a list, since the elements don't share a key set), the
	// item's remaining sibling fields sit one level deeper than usual —
	// at the same depth as that body, not at itemDepth+1.
	input := "rows[1]:\n  - tags[2]:\n      - x: 1\n      - y: 2\n      name: Zed\n"
	v, err := Decode(input, DecodeOptions{})
	require.NoError(t, err)
	rows, _ := v.Object().Get("rows")
	require.Len(t, rows.Array(), 1)
	row := rows.Array()[0].Object()

	tags, ok := row.Get("tags")
	require.True(t, ok)
	require.Len(t, tags.Array(), 2)
	x, _ := tags.Array()[0].Object().Get("x")
	assert.Equal(t, float64(1), x.Number())

	name, ok := row.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Zed", name.Str())
}

func TestDecodeKeyedArrayAsFirstFieldOfListItem(t *testing.T) {
	input := "rows[1]:\n  - tags[2]: a,b\n    name: Zed\n"
	v, err := Decode(input, DecodeOptions{})
	require.NoError(t, err)
	rows, _ := v.Object().Get("rows")
	require.Len(t, rows.Array(), 1)
	row := rows.Array()[0].Object()
	tags, ok := row.Get("tags")
	require.True(t, ok)
	assert.Len(t, tags.Array(), 2)
	name, _ := row.Get("name")
	assert.Equal(t, "Zed", name.Str())
}
