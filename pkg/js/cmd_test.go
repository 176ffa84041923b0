package js

import (
	"strings"
	"testing"
)

func TestSeq(t *testing.T) {
	tests := []struct {
		name string
		cmds []Cmd
		want string
	}{
		{"joins in order", []Cmd{Raw("a();"), Raw("b();")}, "a();\nb();"},
		{"skips empty", []Cmd{Raw("a();"), Noop, Raw("b();")}, "a();\nb();"},
		{"skips whitespace-only", []Cmd{Raw("  \n"), Raw("x();")}, "x();"},
		{"skips nil", []Cmd{nil, Raw("x();")}, "x();"},
		{"all empty", []Cmd{Noop, nil}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Seq(tt.cmds...).JsCmd(); got != tt.want {
				t.Errorf("Seq = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListen(t *testing.T) {
	got := Listen("lift-ev-1", "click", "doThing(); event.preventDefault();").JsCmd()
	want := `lift.bind("lift-ev-1", "click", function(event) {doThing(); event.preventDefault();});`
	if got != want {
		t.Errorf("Listen = %q, want %q", got, want)
	}
}

func TestOnLoad(t *testing.T) {
	got := OnLoad(Raw("init();")).JsCmd()
	want := "lift.onLoad(function() {init();});"
	if got != want {
		t.Errorf("OnLoad = %q, want %q", got, want)
	}
}

func TestSettingsInitCmd(t *testing.T) {
	s := Settings{AjaxPath: "/lift/ajax", CometPath: "/lift/comet"}
	got := s.InitCmd().JsCmd()
	if !strings.HasPrefix(got, "lift.init({") || !strings.HasSuffix(got, "});") {
		t.Fatalf("InitCmd shape: %q", got)
	}
	for _, want := range []string{`"ajaxPath":"/lift/ajax"`, `"cometPath":"/lift/comet"`} {
		if !strings.Contains(got, want) {
			t.Errorf("InitCmd missing %q: %q", want, got)
		}
	}
	if strings.Contains(got, "logLevel") {
		t.Errorf("empty fields should be omitted: %q", got)
	}
}
