package merge

import (
	"strings"
	"sync"

	"github.com/liftkit-dev/liftkit/pkg/dom"
	"github.com/liftkit-dev/liftkit/pkg/js"
	"github.com/tdewolff/minify/v2"
	minjs "github.com/tdewolff/minify/v2/js"
)

// pageScript assembles the single consolidated script for the page:
// framework initialization, scripts queued by request-scoped code, then one
// listener registration per extracted event attribute, sequenced left to
// right.
func (m *merger) pageScript() js.Cmd {
	var cmds []js.Cmd
	if m.cfg.JSInit != nil {
		cmds = append(cmds, m.cfg.JSInit.InitCmd())
	}
	cmds = append(cmds, m.cfg.QueuedScripts...)
	for _, id := range m.eventOrder {
		for _, ev := range m.events[id] {
			cmds = append(cmds, js.Listen(id, ev.Name, ev.Script))
		}
	}
	return js.Seq(cmds...)
}

// publishPageScript serializes the page script and, when non-empty,
// publishes it under the render version and returns the script reference
// for the tail buffer. The publish callback runs before the reference is
// built so the resource exists by the time the browser requests it.
func (m *merger) publishPageScript() []*dom.Node {
	script := strings.TrimSpace(m.pageScript().JsCmd())
	if script == "" {
		return nil
	}
	if !m.cfg.DevMode {
		script = minifyScript(script)
	}
	version := m.cfg.RenderVersion
	if m.cfg.PublishScript != nil {
		m.cfg.PublishScript(version, script)
	}
	src := m.cfg.pageScriptPath(version)
	return []*dom.Node{dom.Elem("script", []dom.Attr{dom.A("src", src)})}
}

var (
	scriptMinifier *minify.M
	minifierOnce   sync.Once
)

// minifyScript minifies the page script, falling back to the original
// source if the minifier rejects it.
func minifyScript(src string) string {
	minifierOnce.Do(func() {
		scriptMinifier = minify.New()
		scriptMinifier.AddFunc("application/javascript", minjs.Minify)
	})
	minified, err := scriptMinifier.String("application/javascript", src)
	if err != nil {
		return src
	}
	return minified
}
