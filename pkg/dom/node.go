package dom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <form>, etc.
	KindText                 // plain text
	KindComment              // <!-- ... -->
	KindFragment             // grouping without a wrapper element
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Attr is a single attribute. Prefix is empty for unprefixed attributes;
// a non-empty Prefix marks a namespaced attribute (e.g. lift:bind).
// Within one element, unprefixed keys are unique; the same key may appear
// again under a different prefix.
type Attr struct {
	Prefix string
	Key    string
	Value  string
}

// Prefixed reports whether the attribute carries a namespace prefix.
func (a Attr) Prefixed() bool { return a.Prefix != "" }

// Node is one node of the template tree.
type Node struct {
	Kind      Kind
	Tag       string  // element tag name (without prefix)
	Namespace string  // element namespace prefix, e.g. "lift_deferred"
	Attrs     []Attr  // ordered attribute list
	Children  []*Node // child nodes in document order
	Text      string  // for KindText and KindComment
}

// Attr returns the value of the first unprefixed attribute named key.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if !a.Prefixed() && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, if present and non-empty.
func (n *Node) ID() (string, bool) {
	v, ok := n.Attr("id")
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// IsElement reports whether the node is an element with the given tag and
// no namespace prefix.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Kind == KindElement && n.Namespace == "" && n.Tag == tag
}

// WithChildren returns a copy of the element with its child list replaced.
// Attributes are copied so the original node is never aliased.
func (n *Node) WithChildren(children []*Node) *Node {
	out := *n
	out.Attrs = append([]Attr(nil), n.Attrs...)
	out.Children = children
	return &out
}

// WithAttrs returns a copy of the element with its attribute list replaced.
func (n *Node) WithAttrs(attrs []Attr) *Node {
	out := *n
	out.Attrs = attrs
	return &out
}

// FirstElement returns the first element node in the sequence, descending
// into fragments, or nil if the sequence contains no element.
func FirstElement(nodes []*Node) *Node {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		switch n.Kind {
		case KindElement:
			return n
		case KindFragment:
			if e := FirstElement(n.Children); e != nil {
				return e
			}
		}
	}
	return nil
}
