package toon

// findClosingQuote scans s forward from openIdx+1, skipping `\X` escape
// pairs atomically, and returns the index of the next unescaped '"', or -1
// if none is found.
func findClosingQuote(s string, openIdx int) int {
	for i := openIdx + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip the escaped character atomically
		case '"':
			return i
		}
	}
	return -1
}

// findUnquotedChar returns the index of the first occurrence of c in s that
// lies outside any double-quoted run, or -1.
func findUnquotedChar(s string, c byte) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '\\' && inQuotes:
			i++ // escape pair inside quotes consumes two characters
		case ch == '"':
			inQuotes = !inQuotes
		case ch == c && !inQuotes:
			return i
		}
	}
	return -1
}

// parseDelimitedValues splits s on delimiter d, treating a double-quoted
// run as opaque to d. Each result is trimmed of surrounding spaces. An
// entirely empty input yields an empty (nil) slice; a leading or trailing
// empty field is preserved whenever a delimiter borders it.
func parseDelimitedValues(s string, d byte) []string {
	if s == "" {
		return nil
	}

	var out []string
	inQuotes := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '\\' && inQuotes:
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == d && !inQuotes:
			out = append(out, trimSpaces(s[start:i]))
			start = i + 1
		}
	}
	out = append(out, trimSpaces(s[start:]))
	return out
}

// trimSpaces trims ASCII space characters from both ends. TOON tokens are
// trimmed of the plain space character only — tabs and newlines inside a
// token are structural (a tab delimiter, or impossible within a line) and
// must not be silently stripped.
func trimSpaces(s string) string {
	i, j := 0, len(s)
	for i < j && s[i] == ' ' {
		i++
	}
	for j > i && s[j-1] == ' ' {
		j--
	}
	return s[i:j]
}
