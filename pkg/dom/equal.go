package dom

// Equal reports structural equality of two nodes: same kind, tag,
// namespace, text, attribute list (order-sensitive), and children.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Namespace != b.Namespace || a.Text != b.Text {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Dedup removes structural duplicates from a node sequence.
// The first occurrence wins and order is preserved; a sequence already free
// of duplicates is returned with the same elements in the same order.
func Dedup(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		seen := false
		for _, kept := range out {
			if Equal(kept, n) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, n)
		}
	}
	return out
}
