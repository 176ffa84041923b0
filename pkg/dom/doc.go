// Package dom provides the node tree that flows through the merge phase.
//
// Nodes form a small tagged union (element, text, comment, fragment) with
// ordered attribute lists. Trees are treated as immutable: every transform
// allocates replacement nodes and leaves its input untouched, so subtrees
// may be shared freely between templates, deferred fragments, and merge
// output.
package dom
