package merge

import (
	"strconv"

	"github.com/liftkit-dev/liftkit/pkg/dom"
	"github.com/liftkit-dev/liftkit/pkg/validate"
)

// assemble composes the final document from the captured structural shells
// and the buffers the walk produced. Full-merge mode only.
func (m *merger) assemble(out walkOut) *dom.Node {
	headChildren := out.head
	bodyChildren := out.body

	addlHead := append(append([]*dom.Node(nil), out.addlHead...), m.cfg.ExtraHead...)
	for _, n := range dom.Dedup(addlHead) {
		headChildren = append(headChildren, n, dom.Text("\n"))
	}

	if m.cfg.AutoIncludeAJAX {
		bodyChildren = append(bodyChildren, dom.Elem("script", []dom.Attr{dom.A("src", m.cfg.ajaxScriptSrc())}))
	}

	addlTail := append(append([]*dom.Node(nil), out.addlTail...), m.cfg.ExtraTail...)
	addlTail = append(addlTail, m.publishPageScript()...)
	bodyChildren = append(bodyChildren, dom.Dedup(addlTail)...)
	bodyChildren = append(bodyChildren, dom.Text("\n"))

	head := shellOr(m.headShell, "head").WithChildren(headChildren)
	body := shellOr(m.bodyShell, "body").WithChildren(bodyChildren)
	body.Attrs = append(body.Attrs, m.bodyAttributes()...)

	doc := shellOr(m.htmlShell, "html").WithChildren([]*dom.Node{head, body})

	if m.cfg.DevMode {
		if problems := m.validateDocument(doc); len(problems) > 0 {
			body.Children = append(body.Children, errorBlock(problems))
		}
	}
	return doc
}

// bodyAttributes computes the data attributes the client runtime reads off
// the body element. The outer condition and the unconditional GC token
// inside it are intentional: a stateful comet page carries the GC token
// even when GC tracking itself is off.
func (m *merger) bodyAttributes() []dom.Attr {
	if !m.cfg.Stateful || !(m.cfg.AutoIncludeComet || m.cfg.GCTracking) {
		return nil
	}
	attrs := []dom.Attr{dom.A("data-lift-gc", m.cfg.RenderVersion)}
	if m.cfg.AutoIncludeComet {
		attrs = append(attrs, dom.A("data-lift-session-id", m.cfg.SessionID))
		for _, cv := range m.cfg.CometVersions {
			attrs = append(attrs, dom.A("data-lift-comet-"+cv.GUID, strconv.FormatInt(cv.Version, 10)))
		}
	}
	return attrs
}

func (m *merger) validateDocument(doc *dom.Node) []validate.Problem {
	var problems []validate.Problem
	for _, v := range m.cfg.Validators {
		problems = append(problems, v.Validate(doc)...)
	}
	return problems
}

// errorBlock renders validation findings as a visible block appended to the
// body, so dev-mode structural problems surface without failing delivery.
func errorBlock(problems []validate.Problem) *dom.Node {
	items := make([]*dom.Node, 0, len(problems)+1)
	items = append(items, dom.Elem("b", nil, dom.Text("Page validation failed:")))
	for _, p := range problems {
		items = append(items, dom.Elem("div", nil, dom.Text(p.String())))
	}
	return dom.Elem("div",
		[]dom.Attr{dom.A("style", "border: 2px solid red; color: red; padding: 8px; margin: 8px;")},
		items...)
}

// shellOr returns the captured shell or an empty synthesized element. In
// full mode all three shells exist; the fallback keeps assemble total.
func shellOr(shell *dom.Node, tag string) *dom.Node {
	if shell != nil {
		return shell
	}
	return dom.Elem(tag, nil)
}
