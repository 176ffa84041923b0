package validate

import (
	"strings"
	"testing"

	"github.com/liftkit-dev/liftkit/pkg/dom"
)

func doc(headKids []*dom.Node, bodyKids ...*dom.Node) *dom.Node {
	return dom.Elem("html", nil,
		dom.Elem("head", nil, headKids...),
		dom.Elem("body", nil, bodyKids...),
	)
}

func TestUniqueIDs(t *testing.T) {
	tests := []struct {
		name         string
		root         *dom.Node
		wantProblems int
	}{
		{
			"all unique",
			doc(nil, dom.Elem("p", []dom.Attr{dom.A("id", "a")}), dom.Elem("p", []dom.Attr{dom.A("id", "b")})),
			0,
		},
		{
			"one duplicate",
			doc(nil, dom.Elem("p", []dom.Attr{dom.A("id", "a")}), dom.Elem("span", []dom.Attr{dom.A("id", "a")})),
			1,
		},
		{
			"two distinct duplicates",
			doc(nil,
				dom.Elem("p", []dom.Attr{dom.A("id", "a")}), dom.Elem("p", []dom.Attr{dom.A("id", "a")}),
				dom.Elem("p", []dom.Attr{dom.A("id", "b")}), dom.Elem("p", []dom.Attr{dom.A("id", "b")}),
			),
			2,
		},
		{
			"no ids",
			doc(nil, dom.Elem("p", nil)),
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := UniqueIDs{}.Validate(tt.root)
			if len(problems) != tt.wantProblems {
				t.Errorf("got %d problems (%v), want %d", len(problems), problems, tt.wantProblems)
			}
		})
	}
}

func TestUniqueIDsMessage(t *testing.T) {
	root := doc(nil,
		dom.Elem("p", []dom.Attr{dom.A("id", "dup")}),
		dom.Elem("p", []dom.Attr{dom.A("id", "dup")}),
		dom.Elem("p", []dom.Attr{dom.A("id", "dup")}),
	)
	problems := UniqueIDs{}.Validate(root)
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1", len(problems))
	}
	msg := problems[0].String()
	if !strings.Contains(msg, `"dup"`) || !strings.Contains(msg, "3 occurrences") {
		t.Errorf("message = %q", msg)
	}
}

func TestSingleTitle(t *testing.T) {
	title := func() *dom.Node { return dom.Elem("title", nil, dom.Text("t")) }
	tests := []struct {
		name         string
		root         *dom.Node
		wantProblems int
	}{
		{"one title", doc([]*dom.Node{title()}), 0},
		{"no title", doc(nil), 0},
		{"two titles", doc([]*dom.Node{title(), title()}), 1},
		{"titles in body do not count", doc([]*dom.Node{title()}, title()), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := SingleTitle{}.Validate(tt.root)
			if len(problems) != tt.wantProblems {
				t.Errorf("got %d problems (%v), want %d", len(problems), problems, tt.wantProblems)
			}
		})
	}
}

func TestNoNestedForms(t *testing.T) {
	tests := []struct {
		name         string
		root         *dom.Node
		wantProblems int
	}{
		{
			"sibling forms",
			doc(nil, dom.Elem("form", nil), dom.Elem("form", nil)),
			0,
		},
		{
			"directly nested",
			doc(nil, dom.Elem("form", nil, dom.Elem("form", []dom.Attr{dom.A("id", "inner")}))),
			1,
		},
		{
			"deeply nested",
			doc(nil, dom.Elem("form", nil, dom.Elem("div", nil, dom.Elem("form", nil)))),
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := NoNestedForms{}.Validate(tt.root)
			if len(problems) != tt.wantProblems {
				t.Errorf("got %d problems (%v), want %d", len(problems), problems, tt.wantProblems)
			}
		})
	}
}

func TestProblemString(t *testing.T) {
	p := Problem{Message: "oops", Line: 3, Col: 7}
	if got := p.String(); got != "oops (line 3, column 7)" {
		t.Errorf("String = %q", got)
	}
	p = Problem{Message: "oops"}
	if got := p.String(); got != "oops" {
		t.Errorf("String without position = %q", got)
	}
}

func TestDefaults(t *testing.T) {
	names := make(map[string]bool)
	for _, v := range Defaults() {
		names[v.Name()] = true
	}
	for _, want := range []string{"unique-ids", "single-title", "no-nested-forms"} {
		if !names[want] {
			t.Errorf("default validators missing %s (have %v)", want, names)
		}
	}
}
