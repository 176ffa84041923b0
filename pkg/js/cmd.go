// Package js holds the small JavaScript command model the merge phase
// assembles page scripts from. Commands are opaque script values with a
// sequencing combinator; serialization is plain string concatenation.
package js

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cmd is a piece of client-side JavaScript.
type Cmd interface {
	JsCmd() string
}

// Raw is a literal script fragment.
type Raw string

// JsCmd implements Cmd.
func (r Raw) JsCmd() string { return string(r) }

// Noop is the empty command.
var Noop = Raw("")

type seq []Cmd

func (s seq) JsCmd() string {
	parts := make([]string, 0, len(s))
	for _, c := range s {
		if c == nil {
			continue
		}
		if body := c.JsCmd(); strings.TrimSpace(body) != "" {
			parts = append(parts, body)
		}
	}
	return strings.Join(parts, "\n")
}

// Seq combines commands into one that executes left to right.
func Seq(cmds ...Cmd) Cmd { return seq(cmds) }

// Listen binds a handler to an event on the element with the given id.
// The handler body is wrapped in an anonymous function receiving the
// triggering event, dispatched through the lift client runtime.
func Listen(id, event, script string) Cmd {
	return Raw(fmt.Sprintf("lift.bind(%q, %q, function(event) {%s});", id, event, script))
}

// OnLoad defers a command until the document has loaded.
func OnLoad(cmd Cmd) Cmd {
	return Raw(fmt.Sprintf("lift.onLoad(function() {%s});", cmd.JsCmd()))
}

// Settings configures the lift client runtime.
type Settings struct {
	AjaxPath  string `json:"ajaxPath,omitempty"`
	CometPath string `json:"cometPath,omitempty"`
	LogLevel  string `json:"logLevel,omitempty"`
}

// InitCmd returns the framework initialization command for the settings.
func (s Settings) InitCmd() Cmd {
	encoded, err := json.Marshal(s)
	if err != nil {
		return Noop
	}
	return Raw(fmt.Sprintf("lift.init(%s);", encoded))
}
