package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Render serializes a node tree to HTML.
func Render(w io.Writer, node *Node) error {
	return renderNode(w, node)
}

// RenderString serializes a node tree to an HTML string.
func RenderString(node *Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDocument writes a DOCTYPE followed by the document root.
func RenderDocument(w io.Writer, root *Node) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return renderNode(w, root)
}

func renderNode(w io.Writer, node *Node) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case KindElement:
		return renderElement(w, node)
	case KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case KindComment:
		if _, err := fmt.Fprintf(w, "<!--%s-->", node.Text); err != nil {
			return err
		}
		return nil
	case KindFragment:
		for _, child := range node.Children {
			if err := renderNode(w, child); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func renderElement(w io.Writer, node *Node) error {
	tag := node.Tag
	if node.Namespace != "" {
		tag = node.Namespace + ":" + tag
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	for _, a := range node.Attrs {
		key := a.Key
		if a.Prefixed() {
			key = a.Prefix + ":" + a.Key
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(a.Value)); err != nil {
			return err
		}
	}
	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	if isVoidElement(node.Tag) {
		return nil
	}

	// script and style content must not be entity-escaped
	rawText := node.Tag == "script" || node.Tag == "style"
	for _, child := range node.Children {
		if rawText && child != nil && child.Kind == KindText {
			if _, err := io.WriteString(w, child.Text); err != nil {
				return err
			}
			continue
		}
		if err := renderNode(w, child); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes text for safe inclusion in attribute values.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
