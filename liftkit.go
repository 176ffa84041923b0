// Package liftkit is the root facade: version information and a
// convenience entry point for merging template HTML.
//
// The interesting code lives in the subpackages: pkg/merge implements the
// merge phase, pkg/dom the node tree, pkg/page the request-scoped
// collaborator, and pkg/server the HTTP surface.
package liftkit

import (
	"strings"

	"github.com/liftkit-dev/liftkit/pkg/dom"
	"github.com/liftkit-dev/liftkit/pkg/merge"
)

// Version is the library version.
const Version = "0.3.0"

// MergeHTML parses template HTML, merges it with the given configuration,
// and returns the serialized result. Templates with a full html/head/body
// skeleton yield a complete document (with DOCTYPE); fragments yield the
// transformed first element.
func MergeHTML(src string, cfg merge.Config) (string, error) {
	nodes, err := dom.ParseTemplate(src)
	if err != nil {
		return "", err
	}
	result := merge.Merge(nodes, cfg)
	if result.IsElement("html") {
		var b strings.Builder
		if err := dom.RenderDocument(&b, result); err != nil {
			return "", err
		}
		return b.String(), nil
	}
	return dom.RenderString(result)
}
