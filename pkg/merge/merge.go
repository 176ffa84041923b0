package merge

import (
	"time"

	"github.com/liftkit-dev/liftkit/pkg/dom"
)

// DeferredPrefix is the namespace prefix marking deferred-content
// placeholder elements. The placeholder's id attribute is the snippet
// correlation key.
const DeferredPrefix = "lift_deferred"

// merger holds the state of one merge invocation. Everything here is
// confined to a single call to Merge; nothing is shared across requests.
type merger struct {
	cfg      Config
	resolved map[string][]*dom.Node

	htmlShell *dom.Node
	headShell *dom.Node
	bodyShell *dom.Node

	// extracted events by element id, in first-registration order
	events     map[string][]EventAttribute
	eventOrder []string

	idSeq int
}

// Merge combines a template tree with the request-scoped state in cfg and
// returns the final document node.
//
// Full mode requires the template to contain an html element with both a
// head and a body child; it produces a synthesized document from the
// captured structural shells and the head/body buffers. Any other template
// runs in fragment mode: the tree is transformed in place (URL rewriting
// and event extraction still apply) and the first element of the result is
// returned, or an empty text node if the result holds no element.
//
// Merge never fails: deferred fragments that miss the deadline or whose
// producers failed degrade to configured placeholder content, and dev-mode
// validation findings are rendered into the page rather than reported as
// errors.
func Merge(template []*dom.Node, cfg Config) *dom.Node {
	m := &merger{
		cfg:    cfg,
		events: make(map[string][]EventAttribute),
	}

	if cfg.Deferred != nil && cfg.Deferred.Len() > 0 {
		deadline := time.Now().Add(cfg.deferredTimeout())
		m.resolved = cfg.Deferred.Resolve(deadline, cfg.RenderDeferredTimeout, cfg.RenderDeferredFailure)
	}

	full := hasFullSkeleton(template)
	out := m.walkNodes(template, walkContext{capture: full})

	if !full {
		if e := dom.FirstElement(out.nodes); e != nil {
			return e
		}
		return dom.Text("")
	}
	return m.assemble(out)
}

// hasFullSkeleton reports whether the template carries an html element with
// both head and body children, which selects full-merge mode.
func hasFullSkeleton(nodes []*dom.Node) bool {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Kind == dom.KindFragment {
			if hasFullSkeleton(n.Children) {
				return true
			}
			continue
		}
		if !n.IsElement("html") {
			continue
		}
		hasHead, hasBody := false, false
		for _, c := range n.Children {
			if c.IsElement("head") {
				hasHead = true
			}
			if c.IsElement("body") {
				hasBody = true
			}
		}
		if hasHead && hasBody {
			return true
		}
	}
	return false
}
