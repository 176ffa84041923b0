package dom

import (
	"strings"
	"testing"
)

func TestRenderString(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			"element with attrs and text",
			Elem("a", []Attr{{Key: "href", Value: "/x"}}, Text("go")),
			`<a href="/x">go</a>`,
		},
		{
			"void element",
			Elem("br", nil),
			"<br>",
		},
		{
			"void element with attrs",
			Elem("img", []Attr{{Key: "src", Value: "/pic.png"}}),
			`<img src="/pic.png">`,
		},
		{
			"text escaping",
			Text("a < b & c > d"),
			"a &lt; b &amp; c &gt; d",
		},
		{
			"attribute escaping",
			Elem("div", []Attr{{Key: "title", Value: `say "hi" & bye`}}),
			`<div title="say &quot;hi&quot; &amp; bye"></div>`,
		},
		{
			"comment",
			Comment(" note "),
			"<!-- note -->",
		},
		{
			"fragment renders children without wrapper",
			Fragment(Elem("b", nil, Text("x")), Text("y")),
			"<b>x</b>y",
		},
		{
			"script content is not escaped",
			Elem("script", nil, Text("if (a < b) { go(); }")),
			"<script>if (a < b) { go(); }</script>",
		},
		{
			"prefixed element and attribute",
			&Node{Kind: KindElement, Tag: "node", Namespace: "lift_deferred", Attrs: []Attr{{Prefix: "data", Key: "k", Value: "v"}}},
			`<lift_deferred:node data:k="v"></lift_deferred:node>`,
		},
		{
			"nil renders nothing",
			nil,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderString(tt.node)
			if err != nil {
				t.Fatalf("RenderString: %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDocument(t *testing.T) {
	doc := Elem("html", nil,
		Elem("head", nil),
		Elem("body", nil, Elem("p", nil, Text("hi"))),
	)
	var b strings.Builder
	if err := RenderDocument(&b, doc); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	got := b.String()
	if !strings.HasPrefix(got, "<!DOCTYPE html>\n") {
		t.Errorf("document missing DOCTYPE: %q", got)
	}
	if !strings.Contains(got, "<p>hi</p>") {
		t.Errorf("document missing body content: %q", got)
	}
}
