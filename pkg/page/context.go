package page

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/liftkit-dev/liftkit/pkg/deferred"
	"github.com/liftkit-dev/liftkit/pkg/dom"
	"github.com/liftkit-dev/liftkit/pkg/js"
	"github.com/liftkit-dev/liftkit/pkg/merge"
	"github.com/liftkit-dev/liftkit/pkg/validate"
)

// Options configures a render Context. Zero values give a stateless
// production-mode context with an in-memory script store.
type Options struct {
	SessionID        string
	Stateful         bool
	DevMode          bool
	StripComments    bool
	GCTracking       bool
	AutoIncludeAJAX  bool
	AutoIncludeComet bool

	// RewriteURL and EncodeURL are the session's URL-fixing functions.
	RewriteURL func(string) string
	EncodeURL  func(string) string

	JSInit          *js.Settings
	DeferredTimeout time.Duration
	Validators      []validate.Validator

	// RenderDeferredTimeout and RenderDeferredFailure override the
	// default placeholder fragments.
	RenderDeferredTimeout func() []*dom.Node
	RenderDeferredFailure func(error) []*dom.Node

	// Store receives published page scripts. Defaults to a MemoryStore.
	Store ScriptStore

	Logger *slog.Logger
}

// Context is the request-scoped collaborator one page render works
// against. Snippets queue scripts and head/tail nodes on it while the
// template renders; the merge drains that state through MergeConfig.
type Context struct {
	opts          Options
	renderVersion string
	deferred      *deferred.Results
	store         ScriptStore
	logger        *slog.Logger

	mu            sync.Mutex
	queued        []js.Cmd
	extraHead     []*dom.Node
	extraTail     []*dom.Node
	cometVersions []merge.CometVersion
	published     bool
}

// NewContext creates a render context for one page request.
func NewContext(opts Options) *Context {
	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := newRenderVersion()
	return &Context{
		opts:          opts,
		renderVersion: version,
		deferred:      deferred.NewResults(),
		store:         store,
		logger:        logger.With("render_version", version),
	}
}

// newRenderVersion generates the per-page render version identifier.
func newRenderVersion() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// RenderVersion returns the page's render version identifier.
func (c *Context) RenderVersion() string { return c.renderVersion }

// Deferred returns the deferred-fragment result map shared with snippet
// producers.
func (c *Context) Deferred() *deferred.Results { return c.deferred }

// Store returns the script store scripts are published to.
func (c *Context) Store() ScriptStore { return c.store }

// QueueScript queues a script command to run as part of the page script.
func (c *Context) QueueScript(cmd js.Cmd) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queued = append(c.queued, cmd)
}

// AddHeadNode queues a node for the additional-head buffer.
func (c *Context) AddHeadNode(n *dom.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extraHead = append(c.extraHead, n)
}

// AddTailNode queues a node for the additional-tail buffer.
func (c *Context) AddTailNode(n *dom.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extraTail = append(c.extraTail, n)
}

// TrackComet records an active comet channel version pair for this page.
func (c *Context) TrackComet(guid string, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cometVersions = append(c.cometVersions, merge.CometVersion{GUID: guid, Version: version})
}

// ScriptPublished reports whether the merge published a page script under
// this context's render version.
func (c *Context) ScriptPublished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.published
}

// MergeConfig snapshots the accumulated request state into the explicit
// parameter object the merge core consumes.
func (c *Context) MergeConfig() merge.Config {
	c.mu.Lock()
	queued := append([]js.Cmd(nil), c.queued...)
	extraHead := append([]*dom.Node(nil), c.extraHead...)
	extraTail := append([]*dom.Node(nil), c.extraTail...)
	cometVersions := append([]merge.CometVersion(nil), c.cometVersions...)
	c.mu.Unlock()

	renderTimeout := c.opts.RenderDeferredTimeout
	if renderTimeout == nil {
		renderTimeout = defaultTimeoutPlaceholder
	}
	renderFailure := c.opts.RenderDeferredFailure
	if renderFailure == nil {
		renderFailure = defaultFailurePlaceholder
	}

	return merge.Config{
		RewriteURL:            c.opts.RewriteURL,
		EncodeURL:             c.opts.EncodeURL,
		Stateful:              c.opts.Stateful,
		DevMode:               c.opts.DevMode,
		StripComments:         c.opts.StripComments,
		GCTracking:            c.opts.GCTracking,
		AutoIncludeAJAX:       c.opts.AutoIncludeAJAX,
		AutoIncludeComet:      c.opts.AutoIncludeComet,
		SessionID:             c.opts.SessionID,
		RenderVersion:         c.renderVersion,
		CometVersions:         cometVersions,
		JSInit:                c.opts.JSInit,
		QueuedScripts:         queued,
		ExtraHead:             extraHead,
		ExtraTail:             extraTail,
		Deferred:              c.deferred,
		DeferredTimeout:       c.opts.DeferredTimeout,
		RenderDeferredTimeout: renderTimeout,
		RenderDeferredFailure: renderFailure,
		Validators:            c.opts.Validators,
		PublishScript:         c.publishScript,
	}
}

// Merge runs the merge phase for the template against this context.
func (c *Context) Merge(template []*dom.Node) *dom.Node {
	return merge.Merge(template, c.MergeConfig())
}

// publishScript stores the assembled page script under the render version.
// The association is recorded before the merge emits the script reference.
func (c *Context) publishScript(version, script string) {
	if err := c.store.Put(context.Background(), version, []byte(script)); err != nil {
		c.logger.Error("failed to publish page script", "error", err)
		return
	}
	c.mu.Lock()
	c.published = true
	c.mu.Unlock()
}

func defaultTimeoutPlaceholder() []*dom.Node {
	return []*dom.Node{dom.Elem("span",
		[]dom.Attr{dom.A("class", "lift-deferred-timeout")},
		dom.Text("Deferred content timed out."))}
}

func defaultFailurePlaceholder(err error) []*dom.Node {
	return []*dom.Node{dom.Elem("span",
		[]dom.Attr{dom.A("class", "lift-deferred-failed")},
		dom.Text("Deferred content failed to render."))}
}
