package toon

import (
	"strconv"
	"strings"
)

// isUnquotedKey reports whether key may be emitted bare: identifier
// characters plus dot, starting with a letter or underscore.
func isUnquotedKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if i == 0 {
			if !isKeyStartByte(c) {
				return false
			}
			continue
		}
		if !isKeyByte(c) {
			return false
		}
	}
	return true
}

func isKeyStartByte(c byte) bool {
	return isAlpha(c) || c == '_'
}

func isKeyByte(c byte) bool {
	return isAlphaNum(c) || c == '_' || c == '.'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// isLiteralKeyword reports whether s is one of the three reserved literal
// tokens that a bare string must never be confused with.
func isLiteralKeyword(s string) bool {
	return s == "true" || s == "false" || s == "null"
}

// isNumericLike reports whether s looks like a TOON number token: an
// optional sign, digits, optional fractional part, optional exponent. This
// also flags leading-zero integers (e.g. "05"), which are numeric-*like* but
// decode as a string rather than a number — isLeadingZeroInteger is the
// separate, narrower check that drives that distinction downstream
// (parsePrimitiveToken, below); isNumericLike itself just needs to say
// "quote this if emitted as a string".
func isNumericLike(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return false
	}
	if i == len(s) {
		return true // plain integer, including leading-zero integers
	}

	if s[i] == '.' {
		i++
		fracStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == fracStart {
			return false
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == expStart {
			return false
		}
	}

	return i == len(s)
}

// isSafeUnquotedString reports whether s may be emitted as a bare token
// under active delimiter d.
func isSafeUnquotedString(s string, d byte) bool {
	if s == "" {
		return false
	}
	if strings.TrimSpace(s) != s {
		return false
	}
	if isLiteralKeyword(s) {
		return false
	}
	if isNumericLike(s) {
		return false
	}
	if s[0] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ':', '"', '\\', '[', ']', '{', '}', '\n', '\r', '\t':
			return false
		default:
			if c == d {
				return false
			}
		}
	}
	return true
}

// quoteString double-quotes s, applying the five-character escape alphabet.
// All other bytes, including multi-byte UTF-8 sequences and emoji, pass
// through unchanged.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// quoteKey renders key, quoting it if it fails isUnquotedKey.
func quoteKey(key string) string {
	if isUnquotedKey(key) {
		return key
	}
	return quoteString(key)
}

// unquoteString reverses quoteString on the contents between the quotes
// (s excludes the surrounding quote characters). Returns SyntaxInvalidEscape
// on an unrecognized escape, and SyntaxUnterminatedString if a trailing
// backslash has nothing to escape.
func unquoteString(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", newError(ErrSyntaxUnterminatedString, 0, "incomplete escape sequence at end of string")
		}
		switch esc := s[i]; esc {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			return "", newError(ErrSyntaxInvalidEscape, 0, "invalid escape sequence '\\%c'", esc)
		}
	}
	return b.String(), nil
}

// parsePrimitiveToken parses a single trimmed token into its primitive
// Value, applying the literal/numeric/quoted/bare-string rules.
func parsePrimitiveToken(tok string) (Value, error) {
	if tok == "" {
		return String(""), nil
	}
	if tok[0] == '"' {
		if len(tok) < 2 || tok[len(tok)-1] != '"' {
			return Value{}, newError(ErrSyntaxUnterminatedString, 0, "unterminated quoted string %q", tok)
		}
		inner := tok[1 : len(tok)-1]
		s, err := unquoteString(inner)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	}

	switch tok {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return Null(), nil
	}

	if isNumericLike(tok) && !isLeadingZeroInteger(tok) {
		n, ok := parseFloat(tok)
		if ok {
			return Number(n), nil
		}
	}

	return String(tok), nil
}

// isLeadingZeroInteger reports whether s is an all-digit integer token with
// a leading zero and more than one digit, e.g. "05" — decodes as a string,
// not the number 5.
func isLeadingZeroInteger(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := s[i:]
	if len(digits) < 2 || digits[0] != '0' {
		return false
	}
	for j := 0; j < len(digits); j++ {
		if !isDigit(digits[j]) {
			return false
		}
	}
	return true
}

func parseFloat(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
