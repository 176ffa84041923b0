package merge

import (
	"strings"

	"github.com/liftkit-dev/liftkit/pkg/dom"
)

// walkContext is the immutable per-call state of the recursive walk. It is
// passed by value; every transition allocates nothing and mutates nothing
// in the caller's frame.
type walkContext struct {
	// capture enables structural classification (full-merge mode).
	// Fragment mode walks with capture false so the flags below never
	// activate and no shell is recorded.
	capture bool

	inHTML   bool // inside the captured html element
	inHead   bool // inside the captured head element
	justHead bool // this position is a direct child of the head shell
	inBody   bool // inside the captured body element
	justBody bool // this position is a direct child of the body shell
}

// walkOut is the result of walking one node (or node sequence): the
// transformed nodes emitted in place plus the buffer appends the walk
// produced below this point. Callers merge child results in document
// order, which keeps the single-pass semantics without shared mutable
// buffers.
type walkOut struct {
	nodes    []*dom.Node
	head     []*dom.Node
	body     []*dom.Node
	addlHead []*dom.Node
	addlTail []*dom.Node
}

// absorb merges a child result's buffers, leaving nodes to the caller.
func (o *walkOut) absorb(child walkOut) {
	o.head = append(o.head, child.head...)
	o.body = append(o.body, child.body...)
	o.addlHead = append(o.addlHead, child.addlHead...)
	o.addlTail = append(o.addlTail, child.addlTail...)
}

func (m *merger) walkNodes(nodes []*dom.Node, ctx walkContext) walkOut {
	var out walkOut
	for _, n := range nodes {
		child := m.walkNode(n, ctx)
		out.absorb(child)
		out.nodes = append(out.nodes, child.nodes...)
	}
	return out
}

// walkNode classifies and transforms a single node. Structural rules run
// first (at most one per node), then node-kind handling, then the result is
// routed into the buffer the parent marked this position for.
func (m *merger) walkNode(n *dom.Node, ctx walkContext) walkOut {
	var out walkOut
	if n == nil {
		return out
	}

	childCtx := ctx
	childCtx.justHead = false
	childCtx.justBody = false
	bodyHead := false
	bodyTail := false

	if n.Kind == dom.KindElement && n.Namespace == "" && ctx.capture {
		switch {
		case !ctx.inHTML && n.Tag == "html":
			m.htmlShell = n
			childCtx.inHTML = true
		case ctx.inHTML && !ctx.inBody && n.Tag == "head":
			m.headShell = n
			childCtx.inHead = true
			childCtx.justHead = true
		case ctx.inHTML && ctx.inBody && (n.Tag == "head" || strings.HasPrefix(n.Tag, "head_")):
			bodyHead = true
		case ctx.inHTML && ctx.inBody && n.Tag == "tail":
			bodyTail = true
		case ctx.inHTML && !ctx.inBody && n.Tag == "body":
			m.bodyShell = n
			childCtx.inBody = true
			childCtx.justBody = true
		}
	}

	var ret []*dom.Node
	switch {
	case n.Kind == dom.KindFragment:
		sub := m.walkNodes(n.Children, childCtx)
		out.absorb(sub)
		ret = []*dom.Node{dom.Fragment(sub.nodes...)}

	case n.Kind == dom.KindElement && n.Namespace == DeferredPrefix:
		// deferred placeholder: substitute the resolved fragment, or
		// nothing if the key never resolved to an entry
		if key, ok := n.Attr("id"); ok {
			if frag, found := m.resolved[key]; found {
				sub := m.walkNodes(frag, childCtx)
				out.absorb(sub)
				ret = sub.nodes
			}
		}

	case n.Kind == dom.KindElement:
		urlAttr, encode := urlAttrFor(n.Tag)
		sub := m.walkNodes(n.Children, childCtx)
		out.absorb(sub)
		ret = []*dom.Node{m.fixElement(n, urlAttr, encode, sub.nodes)}

	case n.Kind == dom.KindComment:
		if !m.cfg.StripComments {
			ret = []*dom.Node{n}
		}

	default:
		ret = []*dom.Node{n}
	}

	switch {
	case ctx.justHead:
		out.head = append(out.head, ret...)
	case ctx.justBody && !bodyHead && !bodyTail:
		out.body = append(out.body, ret...)
	case bodyHead:
		out.addlHead = append(out.addlHead, unwrap(ret)...)
		out.nodes = append(out.nodes, dom.Text(""))
	case bodyTail:
		out.addlTail = append(out.addlTail, unwrap(ret)...)
		out.nodes = append(out.nodes, dom.Text(""))
	default:
		out.nodes = append(out.nodes, ret...)
	}
	return out
}

// urlAttrFor returns the tag's designated URL-bearing attribute and whether
// its value is session-encoded after rewriting.
func urlAttrFor(tag string) (attr string, encode bool) {
	switch tag {
	case "form":
		return "action", true
	case "script":
		return "src", false
	case "a":
		return "href", true
	case "link":
		return "href", false
	default:
		return "src", true
	}
}

// unwrap drops the head_*/tail wrapper elements so only their content is
// carried into the additional buffers; head content would otherwise end up
// double-wrapped inside the document head.
func unwrap(nodes []*dom.Node) []*dom.Node {
	var out []*dom.Node
	for _, n := range nodes {
		if n != nil && n.Kind == dom.KindElement {
			out = append(out, n.Children...)
			continue
		}
		out = append(out, n)
	}
	return out
}
