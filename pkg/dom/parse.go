package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseTemplate parses template HTML into a node sequence.
//
// Templates that carry a full <html> skeleton are parsed as documents and
// yield the single html element. Anything else is parsed as a body-context
// fragment and yields the fragment's top-level nodes, so partial templates
// keep their own shape instead of gaining a synthesized skeleton.
func ParseTemplate(src string) ([]*Node, error) {
	if strings.Contains(strings.ToLower(src), "<html") {
		root, err := html.Parse(strings.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("parse template: %w", err)
		}
		if htmlNode := findElement(root, "html"); htmlNode != nil {
			return []*Node{convert(htmlNode)}, nil
		}
		return convertChildren(root), nil
	}

	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(src), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse template fragment: %w", err)
	}
	nodes := make([]*Node, 0, len(parsed))
	for _, p := range parsed {
		if n := convert(p); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func convert(n *html.Node) *Node {
	switch n.Type {
	case html.ElementNode:
		prefix, tag := splitPrefix(n.Data)
		out := &Node{
			Kind:      KindElement,
			Tag:       tag,
			Namespace: prefix,
			Children:  convertChildren(n),
		}
		if len(n.Attr) > 0 {
			out.Attrs = make([]Attr, 0, len(n.Attr))
			for _, a := range n.Attr {
				p, key := splitPrefix(a.Key)
				if a.Namespace != "" {
					p = a.Namespace
				}
				out.Attrs = append(out.Attrs, Attr{Prefix: p, Key: key, Value: a.Val})
			}
		}
		return out
	case html.TextNode:
		return Text(n.Data)
	case html.CommentNode:
		return Comment(n.Data)
	case html.DocumentNode:
		return Fragment(convertChildren(n)...)
	default:
		// doctype and raw nodes carry nothing the merge needs
		return nil
	}
}

func convertChildren(n *html.Node) []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if converted := convert(c); converted != nil {
			out = append(out, converted)
		}
	}
	return out
}

// splitPrefix splits "lift_deferred:node" into prefix and local name.
func splitPrefix(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
