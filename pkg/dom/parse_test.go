package dom

import "testing"

func TestParseTemplateDocument(t *testing.T) {
	nodes, err := ParseTemplate(`<html><head><title>t</title></head><body><p>hi</p></body></html>`)
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d top-level nodes, want 1", len(nodes))
	}
	root := nodes[0]
	if !root.IsElement("html") {
		t.Fatalf("root = %v, want html element", root)
	}

	var head, body *Node
	for _, c := range root.Children {
		switch {
		case c.IsElement("head"):
			head = c
		case c.IsElement("body"):
			body = c
		}
	}
	if head == nil || body == nil {
		t.Fatal("parsed document missing head or body")
	}
	if title := FirstElement(head.Children); !title.IsElement("title") {
		t.Errorf("head child = %v, want title", title)
	}
	if p := FirstElement(body.Children); !p.IsElement("p") {
		t.Errorf("body child = %v, want p", p)
	}
}

func TestParseTemplateFragment(t *testing.T) {
	nodes, err := ParseTemplate(`<p>one</p><span id="s">two</span>`)
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if !nodes[0].IsElement("p") {
		t.Errorf("nodes[0] = %v, want p", nodes[0])
	}
	if !nodes[1].IsElement("span") {
		t.Errorf("nodes[1] = %v, want span", nodes[1])
	}
	if id, _ := nodes[1].ID(); id != "s" {
		t.Errorf("span id = %q, want s", id)
	}
}

func TestParseTemplatePrefixedTag(t *testing.T) {
	nodes, err := ParseTemplate(`<lift_deferred:node id="frag-1"></lift_deferred:node>`)
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	n := nodes[0]
	if n.Namespace != "lift_deferred" || n.Tag != "node" {
		t.Errorf("got namespace %q tag %q, want lift_deferred node", n.Namespace, n.Tag)
	}
	if id, _ := n.ID(); id != "frag-1" {
		t.Errorf("id = %q, want frag-1", id)
	}
}

func TestParseTemplateDropsDoctype(t *testing.T) {
	nodes, err := ParseTemplate("<!DOCTYPE html><html><head></head><body></body></html>")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if len(nodes) != 1 || !nodes[0].IsElement("html") {
		t.Fatalf("got %v, want single html element", nodes)
	}
}
