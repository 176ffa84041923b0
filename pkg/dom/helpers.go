package dom

import "fmt"

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a comment node.
func Comment(content string) *Node {
	return &Node{Kind: KindComment, Text: content}
}

// Elem creates an element node.
func Elem(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Children: compact(children),
	}
}

// PrefixedElem creates an element node in the given namespace prefix.
func PrefixedElem(prefix, tag string, attrs []Attr, children ...*Node) *Node {
	n := Elem(tag, attrs, children...)
	n.Namespace = prefix
	return n
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*Node) *Node {
	return &Node{Kind: KindFragment, Children: compact(children)}
}

// A creates an unprefixed attribute.
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// compact drops nil entries so helpers compose with conditional children.
func compact(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
