// Package merge implements the terminal merge phase of the rendering
// pipeline: it combines a partially-rendered template tree with
// request-scoped state into the final HTML document.
//
// One call to Merge performs a single recursive pass over the tree that
// waits for deferred snippet fragments, classifies the tree into its
// html/head/body structure, extracts inline event-handler attributes into
// one consolidated page script, rewrites URL-bearing attributes, and
// assembles the deliverable document with deduplicated head and tail
// injections. Templates without a full html/head/body skeleton run in
// fragment mode, which skips structural capture and document assembly and
// returns the first transformed element — the shape used for partial-page
// responses.
//
// The session-like capabilities the merge needs (URL encoding, feature
// flags, queued scripts, the deferred result map) are passed in as an
// explicit Config value rather than reached through a session object, so
// the core stays testable in isolation.
package merge
