package merge

import (
	"time"

	"github.com/liftkit-dev/liftkit/pkg/deferred"
	"github.com/liftkit-dev/liftkit/pkg/dom"
	"github.com/liftkit-dev/liftkit/pkg/js"
	"github.com/liftkit-dev/liftkit/pkg/validate"
)

// DefaultDeferredTimeout bounds the wait for deferred snippet results when
// the config does not set one.
const DefaultDeferredTimeout = 10 * time.Second

// DefaultAjaxScriptSrc is the auto-included client runtime script.
const DefaultAjaxScriptSrc = "/lift/lift.js"

// CometVersion is one active comet channel the page is tracking.
type CometVersion struct {
	GUID    string
	Version int64
}

// Config carries the request/session capabilities one merge invocation
// needs. The zero value is usable and produces a stateless, production-mode
// merge with no URL rewriting.
type Config struct {
	// RewriteURL maps server-relative URLs to their external form
	// (context path, asset fingerprinting). Nil means identity.
	RewriteURL func(string) string

	// EncodeURL applies session encoding to an already-rewritten URL.
	// Nil means identity.
	EncodeURL func(string) string

	// Session flags.
	Stateful         bool
	DevMode          bool
	StripComments    bool
	GCTracking       bool
	AutoIncludeAJAX  bool
	AutoIncludeComet bool

	SessionID     string
	RenderVersion string
	CometVersions []CometVersion

	// JSInit configures the framework initialization command at the head
	// of the page script. Nil skips initialization.
	JSInit *js.Settings

	// QueuedScripts were queued by request-scoped code during rendering
	// and run after initialization, before extracted event bindings.
	QueuedScripts []js.Cmd

	// ExtraHead and ExtraTail are nodes accumulated by request-scoped
	// code, merged into the additional head/tail buffers before
	// deduplication.
	ExtraHead []*dom.Node
	ExtraTail []*dom.Node

	// Deferred is the result map shared with snippet producers. Nil or
	// empty means no waiting.
	Deferred        *deferred.Results
	DeferredTimeout time.Duration

	// RenderDeferredTimeout and RenderDeferredFailure produce placeholder
	// content for fragments that missed the deadline or failed.
	RenderDeferredTimeout func() []*dom.Node
	RenderDeferredFailure func(error) []*dom.Node

	// Validators run against the assembled document in dev mode.
	Validators []validate.Validator

	// PublishScript associates the render version with the assembled page
	// script. It is invoked before the script reference is emitted so the
	// script is retrievable by the time the page loads.
	PublishScript func(version, script string)

	// PageScriptPath maps a render version to the URL the published page
	// script is served from. Nil uses /lift/page/<version>.js.
	PageScriptPath func(version string) string

	// AjaxScriptSrc overrides the auto-included client script URL.
	AjaxScriptSrc string
}

func (c *Config) rewriteURL(u string) string {
	if c.RewriteURL == nil {
		return u
	}
	return c.RewriteURL(u)
}

func (c *Config) encodeURL(u string) string {
	if c.EncodeURL == nil {
		return u
	}
	return c.EncodeURL(u)
}

func (c *Config) deferredTimeout() time.Duration {
	if c.DeferredTimeout > 0 {
		return c.DeferredTimeout
	}
	return DefaultDeferredTimeout
}

func (c *Config) pageScriptPath(version string) string {
	if c.PageScriptPath != nil {
		return c.PageScriptPath(version)
	}
	return "/lift/page/" + version + ".js"
}

func (c *Config) ajaxScriptSrc() string {
	if c.AjaxScriptSrc != "" {
		return c.AjaxScriptSrc
	}
	return DefaultAjaxScriptSrc
}
