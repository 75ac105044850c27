package toon

// Delimiter is one of the three characters TOON permits as an array's
// active delimiter.
type Delimiter byte

const (
	DelimiterComma Delimiter = ','
	DelimiterTab   Delimiter = '\t'
	DelimiterPipe  Delimiter = '|'
)

// EncodeOptions configures Encode. The zero value resolves to the
// documented defaults (indent 2, comma delimiter, no length marker).
type EncodeOptions struct {
	// Indent is the number of spaces per depth level. Zero resolves to 2.
	Indent int
	// Delimiter is the active delimiter for top-level arrays. Zero
	// resolves to DelimiterComma.
	Delimiter Delimiter
	// LengthMarker, if true, prefixes every array length with '#'.
	LengthMarker bool
}

// DecodeOptions configures Decode. The zero value resolves to the
// documented defaults (indent 2, strict mode on).
type DecodeOptions struct {
	// Indent is the grid size used for depth computation and, in strict
	// mode, the required indent multiple. Zero resolves to 2.
	Indent int
	// Strict, when explicitly set via StrictSet, enables or disables
	// strict-mode validation. When StrictSet is false, strict defaults
	// to true.
	Strict    bool
	StrictSet bool
}

// NonStrict returns a DecodeOptions with strict mode explicitly disabled,
// a convenience for the common case of relaxed decoding.
func NonStrict() DecodeOptions {
	return DecodeOptions{Strict: false, StrictSet: true}
}

type resolvedEncodeOptions struct {
	indent       int
	delimiter    byte
	lengthMarker bool
}

func resolveEncodeOptions(o EncodeOptions) (resolvedEncodeOptions, error) {
	indent := o.Indent
	if indent == 0 {
		indent = 2
	}
	if indent < 1 {
		return resolvedEncodeOptions{}, newError(ErrOptionInvalid, 0, "indent must be a positive integer, got %d", indent)
	}

	delim := o.Delimiter
	if delim == 0 {
		delim = DelimiterComma
	}
	switch delim {
	case DelimiterComma, DelimiterTab, DelimiterPipe:
	default:
		return resolvedEncodeOptions{}, newError(ErrOptionInvalid, 0, "delimiter must be one of ',', '\\t', '|', got %q", byte(delim))
	}

	return resolvedEncodeOptions{indent: indent, delimiter: byte(delim), lengthMarker: o.LengthMarker}, nil
}

type resolvedDecodeOptions struct {
	indent int
	strict bool
}

func resolveDecodeOptions(o DecodeOptions) (resolvedDecodeOptions, error) {
	indent := o.Indent
	if indent == 0 {
		indent = 2
	}
	if indent < 1 {
		return resolvedDecodeOptions{}, newError(ErrOptionInvalid, 0, "indent must be a positive integer, got %d", indent)
	}

	strict := true
	if o.StrictSet {
		strict = o.Strict
	}

	return resolvedDecodeOptions{indent: indent, strict: strict}, nil
}
