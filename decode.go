package toon

import (
	"fmt"
	"strings"
)

// decoder carries the mutable state of one recursive-descent decode pass.
type decoder struct {
	cursor *LineCursor
	indent int
	strict bool
	blanks []blankLineRecord
}

// Decode parses TOON source text into a Value.
func Decode(text string, opts DecodeOptions) (Value, error) {
	ro, err := resolveDecodeOptions(opts)
	if err != nil {
		return Value{}, err
	}

	lines, blanks, err := scanLines(text, ro.indent, ro.strict)
	if err != nil {
		return Value{}, err
	}
	if len(lines) == 0 {
		return Value{}, newError(ErrEmptyInput, 0, "input has no content")
	}

	d := &decoder{cursor: newLineCursor(lines), indent: ro.indent, strict: ro.strict, blanks: blanks}

	root, err := d.decodeRoot()
	if err != nil {
		return Value{}, err
	}
	if !d.cursor.AtEnd() {
		ln, _ := d.cursor.Peek()
		return Value{}, newError(ErrSyntaxInvalidHeader, ln.LineNumber, "unexpected content at depth %d", ln.Depth)
	}

	return root, nil
}

// decodeRoot dispatches on the document's first line: an unkeyed array
// header makes the whole document an array; a keyed array header or a plain
// key:value line both make it an object (decodeObjectFields recognizes the
// keyed-header case itself, so the object decode re-peeks the same line);
// and — for the degenerate case of a single scalar document — a lone line
// with neither makes it a bare primitive.
func (d *decoder) decodeRoot() (Value, error) {
	ln, ok := d.cursor.Peek()
	if !ok {
		return Value{}, newError(ErrEmptyInput, 0, "input has no content")
	}
	if ln.Depth != 0 {
		return Value{}, newError(ErrSyntaxInvalidHeader, ln.LineNumber, "root content must start at depth 0")
	}

	info, inline, isHeader, err := parseArrayHeader(ln.Content, ln.LineNumber)
	if err != nil {
		return Value{}, err
	}
	if isHeader && !info.HasKey {
		d.cursor.Next()
		return d.decodeArrayBody(info, inline, ln.LineNumber, 0)
	}
	if isHeader && info.HasKey {
		return d.decodeObject(0)
	}

	_, hasKey, _, err := splitKeyValue(ln.Content)
	if err != nil {
		return Value{}, err
	}
	if hasKey {
		return d.decodeObject(0)
	}

	if len(d.cursor.lines) != 1 {
		return Value{}, newError(ErrSyntaxMissingColon, ln.LineNumber, "expected 'key: value' or an array header")
	}
	d.cursor.Next()
	return parsePrimitiveToken(ln.Content)
}

// decodeObject decodes an object whose fields sit at depth, returning once
// no more sibling lines remain at that depth.
func (d *decoder) decodeObject(depth int) (Value, error) {
	obj := NewObject()
	if err := d.decodeObjectFields(depth, obj); err != nil {
		return Value{}, err
	}
	return ObjectValue(obj), nil
}

// decodeObjectFields consumes every field line at depth, merging each into
// obj. It is factored out of decodeObject so a list item whose first field
// is given inline (`- name: Alice`) can seed obj with that field and then
// fall into the same loop for the rest.
func (d *decoder) decodeObjectFields(depth int, obj *Object) error {
	for {
		ln, ok := d.cursor.PeekAtDepth(depth)
		if !ok {
			return nil
		}
		content := ln.Content

		if content == "-" || strings.HasPrefix(content, "- ") {
			return newError(ErrSyntaxMissingColon, ln.LineNumber, "unexpected list item inside object")
		}

		info, inline, isHeader, err := parseArrayHeader(content, ln.LineNumber)
		if err != nil {
			return err
		}
		if isHeader && info.HasKey {
			d.cursor.Next()
			arrVal, err := d.decodeArrayBody(info, inline, ln.LineNumber, depth)
			if err != nil {
				return wrapDecodeFrame(err, ln.LineNumber, fmt.Sprintf("decoding array field %q", info.Key))
			}
			obj.Set(info.Key, arrVal)
			continue
		}

		key, hasKey, rawValue, err := splitKeyValue(content)
		if err != nil {
			return err
		}
		if !hasKey {
			return newError(ErrSyntaxMissingColon, ln.LineNumber, "expected 'key: value'")
		}
		d.cursor.Next()

		val, err := d.decodeScalarOrNested(rawValue, depth)
		if err != nil {
			return wrapDecodeFrame(err, ln.LineNumber, fmt.Sprintf("decoding field %q", key))
		}
		obj.Set(key, val)
	}
}

// decodeScalarOrNested resolves the right-hand side of a "key: value" line:
// a non-empty rawValue is a primitive token, an empty one opens a nested
// object at depth+1 (or an empty object, if nothing follows at that depth).
func (d *decoder) decodeScalarOrNested(rawValue string, depth int) (Value, error) {
	if rawValue != "" {
		return parsePrimitiveToken(rawValue)
	}
	if _, ok := d.cursor.PeekAtDepth(depth + 1); !ok {
		return ObjectValue(NewObject()), nil
	}
	return d.decodeObject(depth + 1)
}

// splitKeyValue splits content into a bare-or-quoted key and the trimmed
// text following its ':'. hasKey is false (with err nil) when content does
// not look like a key:value line at all — the caller then falls back to
// treating content as a bare scalar or list item.
func splitKeyValue(content string) (key string, hasKey bool, value string, err error) {
	if content == "" {
		return "", false, "", nil
	}

	if content[0] == '"' {
		closeIdx := findClosingQuote(content, 0)
		if closeIdx == -1 {
			return "", false, "", newError(ErrSyntaxUnterminatedString, 0, "unterminated quoted key")
		}
		rest := content[closeIdx+1:]
		colonIdx := findUnquotedChar(rest, ':')
		if colonIdx == -1 || trimSpaces(rest[:colonIdx]) != "" {
			return "", false, "", nil
		}
		k, uerr := unquoteString(content[1:closeIdx])
		if uerr != nil {
			return "", false, "", uerr
		}
		return k, true, trimSpaces(rest[colonIdx+1:]), nil
	}

	keyEnd := 0
	for keyEnd < len(content) && isKeyByte(content[keyEnd]) {
		keyEnd++
	}
	if keyEnd == 0 || keyEnd >= len(content) || content[keyEnd] != ':' {
		return "", false, "", nil
	}
	return content[:keyEnd], true, trimSpaces(content[keyEnd+1:]), nil
}

// decodeArrayBody decodes the body of an array whose header was just
// consumed at headerLine, itself sitting at parentDepth. inline is the
// trimmed text that followed the header's ':' on that same line.
func (d *decoder) decodeArrayBody(info ArrayHeaderInfo, inline string, headerLine int, parentDepth int) (Value, error) {
	if info.Length == 0 {
		if inline != "" {
			return Value{}, newError(ErrLengthMismatch, headerLine, "array declares length 0 but has inline value(s)")
		}
		return ArrayOf(nil), nil
	}

	if inline != "" {
		tokens := parseDelimitedValues(inline, info.Delimiter)
		elems := make([]Value, len(tokens))
		for i, tok := range tokens {
			v, err := parsePrimitiveToken(tok)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		if len(elems) != info.Length {
			return Value{}, newError(ErrLengthMismatch, headerLine, "array declares length %d but has %d inline value(s)", info.Length, len(elems))
		}
		return ArrayOf(elems), nil
	}

	bodyDepth := parentDepth + 1
	if info.HasFields {
		return d.decodeTabularBody(info, headerLine, bodyDepth)
	}
	return d.decodeListBody(info, headerLine, bodyDepth)
}

func (d *decoder) decodeTabularBody(info ArrayHeaderInfo, headerLine int, bodyDepth int) (Value, error) {
	rows := make([]Value, 0, info.Length)
	lastLine := headerLine

	// Read at most the declared count: a sibling field of an enclosing
	// list item's object may legitimately sit at this same depth right
	// after the header's own rows.
	for len(rows) < info.Length {
		ln, ok := d.cursor.PeekAtDepth(bodyDepth)
		if !ok {
			break
		}
		d.cursor.Next()

		values := parseDelimitedValues(ln.Content, info.Delimiter)
		if len(values) != len(info.Fields) {
			// A lone token where more than one field was declared is the
			// width-based signature of a row written with a different
			// separator than the header declared: detect this only via
			// split width, never by sniffing for the delimiter actually
			// present in the row.
			if len(values) == 1 && len(info.Fields) > 1 {
				return Value{}, newError(ErrDelimiterMismatch, ln.LineNumber, "row split into 1 value under delimiter %q, expected %d fields", info.Delimiter, len(info.Fields))
			}
			return Value{}, newError(ErrTabularWidthMismatch, ln.LineNumber, "row has %d value(s), expected %d", len(values), len(info.Fields))
		}

		row := NewObject()
		for i, field := range info.Fields {
			v, err := parsePrimitiveToken(values[i])
			if err != nil {
				return Value{}, err
			}
			row.Set(field, v)
		}
		rows = append(rows, ObjectValue(row))
		lastLine = ln.LineNumber
	}

	if len(rows) != info.Length {
		return Value{}, newError(ErrLengthMismatch, lastLine, "array declares length %d but has %d row(s)", info.Length, len(rows))
	}
	if d.strict && d.hasBlankBetween(headerLine, lastLine) {
		return Value{}, newError(ErrStrictBlankInArray, headerLine, "blank line inside tabular array body")
	}
	return ArrayOf(rows), nil
}

func (d *decoder) decodeListBody(info ArrayHeaderInfo, headerLine int, itemDepth int) (Value, error) {
	elems := make([]Value, 0, info.Length)
	lastLine := headerLine

	for len(elems) < info.Length {
		ln, ok := d.cursor.PeekAtDepth(itemDepth)
		if !ok {
			break
		}
		content := ln.Content
		if content != "-" && !strings.HasPrefix(content, "- ") {
			break
		}
		d.cursor.Next()
		lastLine = ln.LineNumber

		rest := ""
		if content != "-" {
			rest = content[2:]
		}
		val, err := d.decodeListItem(rest, ln.LineNumber, itemDepth)
		if err != nil {
			return Value{}, wrapDecodeFrame(err, ln.LineNumber, fmt.Sprintf("decoding item %d", len(elems)))
		}
		elems = append(elems, val)
	}

	if len(elems) != info.Length {
		return Value{}, newError(ErrLengthMismatch, lastLine, "array declares length %d but has %d item(s)", info.Length, len(elems))
	}
	if d.strict {
		if ln, ok := d.cursor.PeekAtDepth(itemDepth); ok && (ln.Content == "-" || strings.HasPrefix(ln.Content, "- ")) {
			return Value{}, newError(ErrLengthMismatch, ln.LineNumber, "array declares length %d but has more item(s) following", info.Length)
		}
		if d.hasBlankBetween(headerLine, lastLine) {
			return Value{}, newError(ErrStrictBlankInArray, headerLine, "blank line inside list array body")
		}
	}
	return ArrayOf(elems), nil
}

// decodeListItem interprets the text following one list item's "- ": a
// nested unkeyed array header, the first field of an object row (whose
// remaining fields follow at itemDepth+1), or a bare primitive.
func (d *decoder) decodeListItem(rest string, lineNumber int, itemDepth int) (Value, error) {
	if rest == "" {
		if _, ok := d.cursor.PeekAtDepth(itemDepth + 1); !ok {
			return ObjectValue(NewObject()), nil
		}
		return d.decodeObject(itemDepth + 1)
	}

	info, inline, isHeader, err := parseArrayHeader(rest, lineNumber)
	if err != nil {
		return Value{}, err
	}
	if isHeader && !info.HasKey {
		return d.decodeArrayBody(info, inline, lineNumber, itemDepth)
	}
	if isHeader && info.HasKey {
		obj := NewObject()
		arrVal, err := d.decodeArrayBody(info, inline, lineNumber, itemDepth+1)
		if err != nil {
			return Value{}, err
		}
		obj.Set(info.Key, arrVal)
		// When the header's body sits on its own lines (tabular or list
		// shape, not inline), those rows/items occupy itemDepth+2; the
		// item's remaining sibling fields follow at that same depth,
		// one level deeper than an ordinary list-item field.
		followDepth := itemDepth + 1
		if inline == "" && info.Length > 0 {
			followDepth = itemDepth + 2
		}
		if err := d.decodeObjectFields(followDepth, obj); err != nil {
			return Value{}, err
		}
		return ObjectValue(obj), nil
	}

	key, hasKey, rawValue, err := splitKeyValue(rest)
	if err != nil {
		return Value{}, err
	}
	if hasKey {
		obj := NewObject()
		val, err := d.decodeScalarOrNested(rawValue, itemDepth+1)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
		if err := d.decodeObjectFields(itemDepth+1, obj); err != nil {
			return Value{}, err
		}
		return ObjectValue(obj), nil
	}

	return parsePrimitiveToken(rest)
}

// hasBlankBetween reports whether any blank line falls strictly between lo
// and hi — the strict-mode rule that forbids blank lines inside an array
// body.
func (d *decoder) hasBlankBetween(lo, hi int) bool {
	for _, b := range d.blanks {
		if b.lineNumber > lo && b.lineNumber < hi {
			return true
		}
	}
	return false
}
