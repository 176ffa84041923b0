package dom

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{
			"identical elements",
			Elem("div", []Attr{{Key: "id", Value: "x"}}, Text("hi")),
			Elem("div", []Attr{{Key: "id", Value: "x"}}, Text("hi")),
			true,
		},
		{
			"different attribute order",
			Elem("div", []Attr{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}),
			Elem("div", []Attr{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}),
			false,
		},
		{
			"different text",
			Text("a"), Text("b"), false,
		},
		{
			"comment vs text",
			Comment("a"), Text("a"), false,
		},
		{
			"different namespace",
			PrefixedElem("lift", "x", nil), Elem("x", nil), false,
		},
		{
			"nil vs node",
			nil, Text(""), false,
		},
		{
			"both nil",
			nil, nil, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedup(t *testing.T) {
	a := Elem("link", []Attr{{Key: "href", Value: "/a.css"}})
	b := Elem("link", []Attr{{Key: "href", Value: "/b.css"}})
	aAgain := Elem("link", []Attr{{Key: "href", Value: "/a.css"}})

	got := Dedup([]*Node{a, b, aAgain})
	if len(got) != 2 {
		t.Fatalf("Dedup kept %d nodes, want 2", len(got))
	}
	if got[0] != a || got[1] != b {
		t.Error("Dedup should keep first occurrences in order")
	}
}

func TestDedupIdempotent(t *testing.T) {
	nodes := []*Node{
		Elem("meta", []Attr{{Key: "charset", Value: "utf-8"}}),
		Elem("title", nil, Text("t")),
		Text("\n"),
	}
	got := Dedup(nodes)
	if len(got) != len(nodes) {
		t.Fatalf("Dedup changed length of duplicate-free input: %d != %d", len(got), len(nodes))
	}
	for i := range nodes {
		if got[i] != nodes[i] {
			t.Errorf("Dedup reordered duplicate-free input at %d", i)
		}
	}
}
