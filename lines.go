package toon

import "strings"

// ParsedLine is a single non-blank line of TOON source, with its leading
// whitespace already measured and stripped off into Indent/Depth.
type ParsedLine struct {
	Raw       string
	Content   string
	Indent    int
	Depth     int
	LineNumber int
}

// blankLineRecord captures a whitespace-only line for later strict-mode
// validation; it is never handed to the decoder as a ParsedLine.
type blankLineRecord struct {
	lineNumber int
	indent     int
	depth      int
}

// scanLines splits text on '\n', producing one ParsedLine per non-blank
// line and collecting blank lines separately. indentSize controls depth
// computation; in strict mode, any tab in the indentation region or any
// non-zero indent that is not an exact multiple of indentSize is rejected.
func scanLines(text string, indentSize int, strict bool) ([]ParsedLine, []blankLineRecord, error) {
	rawLines := strings.Split(text, "\n")
	if n := len(rawLines); n > 0 && rawLines[n-1] == "" {
		// A trailing '\n' produces a final empty split element that is not
		// itself a line of input; drop it so it isn't counted as a blank line.
		rawLines = rawLines[:n-1]
	}

	var parsed []ParsedLine
	var blanks []blankLineRecord

	for i, raw := range rawLines {
		lineNumber := i + 1

		indent, hadTab := countIndent(raw)
		content := raw[indentByteLen(raw, indent, hadTab):]

		if strings.TrimSpace(content) == "" {
			blanks = append(blanks, blankLineRecord{lineNumber: lineNumber, indent: indent, depth: indent / indentSize})
			continue
		}

		if strict {
			if hadTab {
				return nil, nil, newError(ErrStrictTabInIndent, lineNumber, "tab character in leading whitespace")
			}
			if indent > 0 && indent%indentSize != 0 {
				return nil, nil, newError(ErrStrictIndentNotMultiple, lineNumber, "indent %d is not a multiple of %d", indent, indentSize)
			}
		}

		parsed = append(parsed, ParsedLine{
			Raw:        raw,
			Content:    content,
			Indent:     indent,
			Depth:      indent / indentSize,
			LineNumber: lineNumber,
		})
	}

	return parsed, blanks, nil
}

// countIndent counts leading space characters (and, for the hadTab flag
// only, detects a leading tab so the caller can reject it in strict mode).
// Leading tabs do not count toward indent; in non-strict mode a line that
// opens with tabs before spaces has those tabs silently skipped.
func countIndent(raw string) (indent int, hadTab bool) {
	i := 0
	for i < len(raw) {
		switch raw[i] {
		case ' ':
			indent++
			i++
		case '\t':
			hadTab = true
			i++
		default:
			return indent, hadTab
		}
	}
	return indent, hadTab
}

// indentByteLen returns the number of leading bytes (spaces and tabs alike)
// that countIndent walked over, so content can be sliced past all of it
// regardless of whether tabs were present.
func indentByteLen(raw string, indent int, hadTab bool) int {
	if !hadTab {
		return indent
	}
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	return i
}
