package merge

import (
	"fmt"
	"strings"

	"github.com/liftkit-dev/liftkit/pkg/dom"
)

// EventAttribute is one extracted inline handler: the DOM event name and
// the handler script. It exists only for the duration of a merge pass.
type EventAttribute struct {
	Name   string
	Script string
}

// jsURIEvents maps attributes that accept javascript: URIs to the event
// the extracted handler binds to.
var jsURIEvents = map[string]string{
	"action": "submit",
	"href":   "click",
}

// harmlessJSURI replaces a javascript: URI whose handler was extracted, so
// following the link does nothing.
const harmlessJSURI = "javascript://"

// fixElement rebuilds an element with its URL attribute rewritten, inline
// event handlers extracted, and (when events were extracted without an
// author-supplied id) a generated id attached. children must already be
// recursively fixed.
//
// Attributes are processed right to left, so when id appears more than once
// the occurrence nearest the element wins. Prefixed attributes pass through
// untouched.
func (m *merger) fixElement(e *dom.Node, urlAttr string, encode bool, children []*dom.Node) *dom.Node {
	var revEvents []EventAttribute
	id := ""
	revKept := make([]dom.Attr, 0, len(e.Attrs))

	for i := len(e.Attrs) - 1; i >= 0; i-- {
		a := e.Attrs[i]
		if a.Prefixed() {
			revKept = append(revKept, a)
			continue
		}

		if event, isJSURI := jsURIEvents[a.Key]; isJSURI && strings.HasPrefix(a.Value, "javascript:") {
			script := strings.TrimPrefix(a.Value, "javascript:")
			script = strings.TrimPrefix(script, "//")
			script = strings.TrimSpace(script)
			if script == "" {
				// nothing to extract; the URI is already inert
				revKept = append(revKept, a)
				continue
			}
			if !strings.HasSuffix(script, ";") {
				script += ";"
			}
			script += " event.preventDefault();"
			revEvents = append(revEvents, EventAttribute{Name: event, Script: script})
			revKept = append(revKept, dom.Attr{Key: a.Key, Value: harmlessJSURI})
			continue
		}

		switch {
		case a.Key == urlAttr:
			fixed := m.cfg.rewriteURL(a.Value)
			if encode {
				fixed = m.cfg.encodeURL(fixed)
			}
			revKept = append(revKept, dom.Attr{Key: a.Key, Value: fixed})

		case strings.HasPrefix(a.Key, "on") && len(a.Key) > 2:
			// inline handlers never survive into output; they are
			// flattened into the page script
			revEvents = append(revEvents, EventAttribute{Name: a.Key[2:], Script: a.Value})

		case a.Key == "id":
			if a.Value != "" {
				id = a.Value
			}
			revKept = append(revKept, a)

		default:
			revKept = append(revKept, a)
		}
	}

	kept := reversed(revKept)
	events := reversed(revEvents)

	if len(events) > 0 {
		if id == "" {
			id = m.nextID()
			kept = append(kept, dom.Attr{Key: "id", Value: id})
		}
		m.registerEvents(id, events)
	}

	return &dom.Node{
		Kind:      dom.KindElement,
		Tag:       e.Tag,
		Namespace: e.Namespace,
		Attrs:     kept,
		Children:  children,
	}
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// nextID generates the next synthetic element id. The sequence is confined
// to one merge invocation, so ids stay unique without cross-request
// coordination.
func (m *merger) nextID() string {
	m.idSeq++
	return fmt.Sprintf("lift-ev-%d", m.idSeq)
}

func (m *merger) registerEvents(id string, events []EventAttribute) {
	if _, exists := m.events[id]; !exists {
		m.eventOrder = append(m.eventOrder, id)
	}
	m.events[id] = append(m.events[id], events...)
}
