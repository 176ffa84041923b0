package validate

import (
	"fmt"
	"strings"

	"github.com/liftkit-dev/liftkit/pkg/dom"
)

// UniqueIDs reports element ids that appear more than once in the document.
type UniqueIDs struct{}

// Name implements Validator.
func (UniqueIDs) Name() string { return "unique-ids" }

// Validate implements Validator.
func (UniqueIDs) Validate(root *dom.Node) []Problem {
	seen := make(map[string]int)
	var order []string
	walk(root, func(n *dom.Node) {
		if id, ok := n.ID(); ok {
			if seen[id] == 0 {
				order = append(order, id)
			}
			seen[id]++
		}
	})
	var problems []Problem
	for _, id := range order {
		if seen[id] > 1 {
			problems = append(problems, Problem{
				Message: fmt.Sprintf("duplicate element id %q (%d occurrences)", id, seen[id]),
			})
		}
	}
	return problems
}

// SingleTitle reports a head containing more than one title element.
type SingleTitle struct{}

// Name implements Validator.
func (SingleTitle) Name() string { return "single-title" }

// Validate implements Validator.
func (SingleTitle) Validate(root *dom.Node) []Problem {
	head := findElement(root, "head")
	if head == nil {
		return nil
	}
	titles := 0
	walk(head, func(n *dom.Node) {
		if n.IsElement("title") {
			titles++
		}
	})
	if titles > 1 {
		return []Problem{{Message: fmt.Sprintf("head contains %d title elements, expected at most one", titles)}}
	}
	return nil
}

// NoNestedForms reports form elements nested inside other forms.
type NoNestedForms struct{}

// Name implements Validator.
func (NoNestedForms) Name() string { return "no-nested-forms" }

// Validate implements Validator.
func (NoNestedForms) Validate(root *dom.Node) []Problem {
	var problems []Problem
	var descend func(n *dom.Node, inForm bool)
	descend = func(n *dom.Node, inForm bool) {
		if n == nil {
			return
		}
		if n.IsElement("form") {
			if inForm {
				loc := ""
				if id, ok := n.ID(); ok {
					loc = " id=" + strings.TrimSpace(id)
				}
				problems = append(problems, Problem{Message: "form element nested inside another form" + loc})
			}
			inForm = true
		}
		for _, c := range n.Children {
			descend(c, inForm)
		}
	}
	descend(root, false)
	return problems
}

func walk(n *dom.Node, fn func(*dom.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

func findElement(n *dom.Node, tag string) *dom.Node {
	if n == nil {
		return nil
	}
	if n.IsElement(tag) {
		return n
	}
	for _, c := range n.Children {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
