package core

import (
	"strings"

	"github.com/A1eksMa/PracticeRaptor/lang"
)

// ValidateSyntax rejects code that cannot parse, before any execution
// is attempted. It uses the same parsing front-end (package lang) the
// executor uses later, so a rejection here matches a rejection at execution
// time.
func ValidateSyntax(source string) *ExecutionFault {
	if strings.TrimSpace(source) == "" {
		return syntaxFault(0, "code is empty")
	}
	if _, err := lang.Parse(source); err != nil {
		return faultFromParseErr(err)
	}
	return nil
}
