package core

import "regexp"

// DefaultEntryPoint is returned when no entry point can be extracted from a
// signature string.
const DefaultEntryPoint = "solution"

var defPattern = regexp.MustCompile(`\bdef\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// ResolveEntryPoint extracts the function name from a canonical
// signature string of the form "def identifier(...)". Whitespace and type
// annotations are tolerated since the match only needs the identifier
// between the keyword and the opening parenthesis. On no match it returns
// DefaultEntryPoint.
func ResolveEntryPoint(signature string) string {
	m := defPattern.FindStringSubmatch(signature)
	if m == nil {
		return DefaultEntryPoint
	}
	return m[1]
}
