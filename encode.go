package toon

import (
	"math"
	"strconv"
	"strings"
)

// encoder carries the resolved options of one encode pass.
type encoder struct {
	indent       int
	delimiter    byte
	lengthMarker bool
}

// Encode renders v as TOON source text. The result never ends in a newline.
func Encode(v Value, opts EncodeOptions) (string, error) {
	ro, err := resolveEncodeOptions(opts)
	if err != nil {
		return "", err
	}
	e := &encoder{indent: ro.indent, delimiter: ro.delimiter, lengthMarker: ro.lengthMarker}

	var b strings.Builder
	switch v.Kind() {
	case KindObject:
		if err := e.encodeObjectFields(&b, v.Object(), 0); err != nil {
			return "", err
		}
	case KindArray:
		if err := e.encodeArray(&b, "", "", v.Array(), 0); err != nil {
			return "", err
		}
	default:
		b.WriteString(e.renderPrimitive(v))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// encodeObjectFields writes one line (or header-plus-body) per key of obj,
// each at depth.
func (e *encoder) encodeObjectFields(b *strings.Builder, obj *Object, depth int) error {
	prefix := indentStr(e.indent, depth)
	for i := 0; i < obj.Len(); i++ {
		key, val := obj.At(i)
		if err := e.encodeObjectEntry(b, prefix, key, val, depth); err != nil {
			return err
		}
	}
	return nil
}

// encodeObjectEntry writes a single "key: ..." line (and any body lines it
// requires) using linePrefix verbatim as the text preceding the key — this
// lets a list item's first field reuse the same logic with a "- "-bearing
// prefix instead of plain indentation.
func (e *encoder) encodeObjectEntry(b *strings.Builder, linePrefix string, key string, val Value, depth int) error {
	switch val.Kind() {
	case KindArray:
		return e.encodeArray(b, linePrefix, quoteKey(key), val.Array(), depth)
	case KindObject:
		o := val.Object()
		b.WriteString(linePrefix)
		b.WriteString(quoteKey(key))
		b.WriteString(":\n")
		if o.Len() > 0 {
			return e.encodeObjectFields(b, o, depth+1)
		}
		return nil
	default:
		b.WriteString(linePrefix)
		b.WriteString(quoteKey(key))
		b.WriteString(": ")
		b.WriteString(e.renderPrimitive(val))
		b.WriteByte('\n')
		return nil
	}
}

type arrayShape int

const (
	shapeInline arrayShape = iota
	shapeTabular
	shapeList
)

// shapeOf picks the array encoding shape: inline when every
// element is primitive, tabular when every element is an object sharing
// the same non-empty field set (in the same order) with purely primitive
// values, and list otherwise.
func shapeOf(arr []Value) (arrayShape, []string) {
	if len(arr) == 0 {
		return shapeInline, nil
	}

	allPrimitive := true
	for _, el := range arr {
		if !el.IsPrimitive() {
			allPrimitive = false
			break
		}
	}
	if allPrimitive {
		return shapeInline, nil
	}

	if arr[0].Kind() != KindObject {
		return shapeList, nil
	}
	fields := append([]string(nil), arr[0].Object().Keys()...)
	if len(fields) == 0 {
		return shapeList, nil
	}

	for _, el := range arr {
		if el.Kind() != KindObject {
			return shapeList, nil
		}
		o := el.Object()
		if o.Len() != len(fields) {
			return shapeList, nil
		}
		for i, k := range fields {
			ok, v := o.At(i)
			if ok != k || !v.IsPrimitive() {
				return shapeList, nil
			}
		}
	}
	return shapeTabular, fields
}

// encodeArray writes one array's header line and, for tabular/list shapes,
// its body. linePrefix is the literal text preceding keyText (plain
// indentation for a field or root array, indentation+"- " for a list item);
// depth is this header's own depth, so the body is written at depth+1.
func (e *encoder) encodeArray(b *strings.Builder, linePrefix, keyText string, arr []Value, depth int) error {
	shape, fields := shapeOf(arr)

	var header strings.Builder
	header.WriteString(linePrefix)
	header.WriteString(keyText)
	header.WriteString(formatHeaderBracket(len(arr), e.delimiter, e.lengthMarker))
	if shape == shapeTabular {
		header.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				header.WriteByte(e.delimiter)
			}
			header.WriteString(quoteKey(f))
		}
		header.WriteByte('}')
	}
	header.WriteByte(':')

	switch shape {
	case shapeInline:
		if len(arr) > 0 {
			header.WriteByte(' ')
			for i, el := range arr {
				if i > 0 {
					header.WriteByte(e.delimiter)
				}
				header.WriteString(e.renderPrimitive(el))
			}
		}
		b.WriteString(header.String())
		b.WriteByte('\n')
		return nil

	case shapeTabular:
		b.WriteString(header.String())
		b.WriteByte('\n')
		rowPrefix := indentStr(e.indent, depth+1)
		for _, el := range arr {
			o := el.Object()
			b.WriteString(rowPrefix)
			for i, f := range fields {
				if i > 0 {
					b.WriteByte(e.delimiter)
				}
				v, _ := o.Get(f)
				b.WriteString(e.renderPrimitive(v))
			}
			b.WriteByte('\n')
		}
		return nil

	default: // shapeList
		b.WriteString(header.String())
		b.WriteByte('\n')
		for _, el := range arr {
			if err := e.encodeListItem(b, el, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
}

// encodeListItem writes one "- " element of a list array.
func (e *encoder) encodeListItem(b *strings.Builder, el Value, itemDepth int) error {
	prefix := indentStr(e.indent, itemDepth)

	switch el.Kind() {
	case KindArray:
		return e.encodeArray(b, prefix+"- ", "", el.Array(), itemDepth)

	case KindObject:
		o := el.Object()
		if o.Len() == 0 {
			b.WriteString(prefix)
			b.WriteString("-\n")
			return nil
		}
		firstKey, firstVal := o.At(0)
		if err := e.encodeObjectEntry(b, prefix+"- ", firstKey, firstVal, itemDepth+1); err != nil {
			return err
		}
		// A first field whose value is a tabular/list array (not inline)
		// writes its own body at itemDepth+2; remaining sibling fields
		// must follow one level deeper than the ordinary itemDepth+1, to
		// sit past that body instead of colliding with it.
		followDepth := itemDepth + 1
		if firstVal.Kind() == KindArray {
			if shape, _ := shapeOf(firstVal.Array()); shape != shapeInline {
				followDepth = itemDepth + 2
			}
		}
		for i := 1; i < o.Len(); i++ {
			k, v := o.At(i)
			if err := e.encodeObjectEntry(b, indentStr(e.indent, followDepth), k, v, followDepth); err != nil {
				return err
			}
		}
		return nil

	default:
		b.WriteString(prefix)
		b.WriteString("- ")
		b.WriteString(e.renderPrimitive(el))
		b.WriteByte('\n')
		return nil
	}
}

// renderPrimitive renders a Null/Bool/Number/String Value as its bare or
// quoted token under the encoder's active delimiter.
func (e *encoder) renderPrimitive(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Number())
	case KindString:
		s := v.Str()
		if isSafeUnquotedString(s, e.delimiter) {
			return s
		}
		return quoteString(s)
	default:
		return ""
	}
}

// formatNumber renders n the way JSON numbers are conventionally rendered:
// integral values with no decimal point, everything else via the shortest
// round-tripping representation.
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func indentStr(indentSize, depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(" ", indentSize*depth)
}
