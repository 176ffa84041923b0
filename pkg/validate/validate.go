// Package validate provides structural document validators run against the
// assembled page in development mode. Validation never fails a request; the
// merge renders problems visibly into the page instead.
package validate

import (
	"fmt"

	"github.com/liftkit-dev/liftkit/pkg/dom"
)

// Problem is a single validation finding. Line and Col are zero when the
// validator has no positional information for the node.
type Problem struct {
	Message string
	Line    int
	Col     int
}

// String formats the problem for display.
func (p Problem) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d)", p.Message, p.Line, p.Col)
	}
	return p.Message
}

// Validator checks one structural property of an assembled document.
type Validator interface {
	Name() string
	Validate(root *dom.Node) []Problem
}

// Defaults returns the validators enabled in development mode.
func Defaults() []Validator {
	return []Validator{
		UniqueIDs{},
		SingleTitle{},
		NoNestedForms{},
	}
}
