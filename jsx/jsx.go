// Package jsx renders HTML node trees as React component source files.
//
// Output is formatted deterministically: two-space indentation, one child
// per line, elements whose content is plain text kept on one line when they
// fit in 80 columns, and attributes broken onto separate lines when the
// opening tag does not fit.
package jsx

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/jsxcorpus"
	"golang.org/x/net/html"
)

const (
	indent     = "  "
	printWidth = 80
)

// rawText elements hold script or style source rather than markup.
var rawText = map[string]bool{
	"script": true,
	"style":  true,
}

// preformatted elements keep their whitespace.
var preformatted = map[string]bool{
	"pre":      true,
	"textarea": true,
	"listing":  true,
}

// Render returns the source of a module exporting a component named
// component whose body returns nodes. Comments and doctypes are dropped.
// Returns EFORMAT if component is not a valid identifier or the markup
// cannot be expressed as well-formed JSX.
func Render(component string, nodes []*html.Node) (string, error) {
	if !IsIdentifier(component) {
		return "", jsxcorpus.Errorf(jsxcorpus.EFORMAT, "invalid component name %q", component)
	}
	if err := Check(nodes); err != nil {
		return "", err
	}

	top := parts(nodes, false)

	var p printer
	p.line(0, `import React from "react";`)
	p.blank()
	p.line(0, "export function "+component+"() {")
	switch {
	case len(top) == 0:
		p.line(1, "return null;")
	case len(top) == 1 && top[0].elem != nil:
		p.line(1, "return (")
		p.element(2, top[0].elem, false)
		p.line(1, ");")
	default:
		p.line(1, "return (")
		p.line(2, "<>")
		p.parts(3, top, false)
		p.line(2, "</>")
		p.line(1, ");")
	}
	p.line(0, "}")

	return p.buf.String(), nil
}

// part is one printable child: an element or a run of JSX text.
type part struct {
	elem *html.Node
	text string
}

// printer accumulates formatted source.
type printer struct {
	buf strings.Builder
}

func (p *printer) line(depth int, s string) {
	for i := 0; i < depth; i++ {
		p.buf.WriteString(indent)
	}
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *printer) blank() {
	p.buf.WriteByte('\n')
}

func (p *printer) parts(depth int, ps []part, preserve bool) {
	for _, c := range ps {
		if c.elem != nil {
			p.element(depth, c.elem, preserve)
			continue
		}
		p.line(depth, c.text)
	}
}

func (p *printer) element(depth int, n *html.Node, preserve bool) {
	name := n.Data
	attrs := attributes(n)
	preserve = preserve || preformatted[name]

	var kids []part
	if rawText[name] {
		kids = rawParts(n)
	} else {
		kids = parts(childNodes(n), preserve)
	}

	if len(kids) == 0 {
		p.openTag(depth, name, attrs, "/>")
		return
	}

	if s, ok := inline(name, attrs, kids); ok && fits(depth, s) {
		p.line(depth, s)
		return
	}

	p.openTag(depth, name, attrs, ">")
	p.parts(depth+1, kids, preserve)
	p.line(depth, "</"+name+">")
}

// openTag prints an opening or self-closing tag, one attribute per line
// when it does not fit.
func (p *printer) openTag(depth int, name string, attrs []string, closer string) {
	single := "<" + name
	if len(attrs) > 0 {
		single += " " + strings.Join(attrs, " ")
	}
	if closer == "/>" {
		single += " />"
	} else {
		single += ">"
	}

	if len(attrs) <= 1 || fits(depth, single) {
		p.line(depth, single)
		return
	}

	p.line(depth, "<"+name)
	for _, a := range attrs {
		p.line(depth+1, a)
	}
	p.line(depth, closer)
}

// inline renders an element whose children are all text on one line.
func inline(name string, attrs []string, kids []part) (string, bool) {
	var sb strings.Builder
	sb.WriteString("<" + name)
	for _, a := range attrs {
		sb.WriteString(" " + a)
	}
	sb.WriteString(">")
	for _, k := range kids {
		if k.elem != nil || strings.Contains(k.text, "\n") {
			return "", false
		}
		sb.WriteString(k.text)
	}
	sb.WriteString("</" + name + ">")
	return sb.String(), true
}

func fits(depth int, s string) bool {
	return depth*len(indent)+utf8.RuneCountInString(s) <= printWidth
}

func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// spaceExpr is an explicit space between a text run and its neighbour.
const spaceExpr = `{" "}`

// parts converts sibling nodes into printable parts. Whitespace runs are
// collapsed and whitespace-only text is dropped unless preserve is set.
// A space at the edge of a text run next to another part is kept as {" "}.
func parts(nodes []*html.Node, preserve bool) []part {
	var out []part
	for i, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			out = append(out, part{elem: n})
		case html.TextNode:
			if preserve {
				if n.Data != "" {
					out = append(out, part{text: "{" + jsString(n.Data) + "}"})
				}
				continue
			}
			collapsed := collapseSpace(n.Data)
			trimmed := strings.Trim(collapsed, " ")
			if trimmed == "" {
				continue
			}
			text := escapeText(trimmed)
			if strings.HasPrefix(collapsed, " ") && len(out) > 0 && !strings.HasSuffix(out[len(out)-1].text, spaceExpr) {
				text = spaceExpr + text
			}
			if strings.HasSuffix(collapsed, " ") && hasContent(nodes[i+1:]) {
				text += spaceExpr
			}
			out = append(out, part{text: text})
		}
	}
	return out
}

// hasContent reports whether any node would produce a part.
func hasContent(nodes []*html.Node) bool {
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			return true
		case html.TextNode:
			if strings.Trim(collapseSpace(n.Data), " ") != "" {
				return true
			}
		}
	}
	return false
}

// rawParts returns script or style content as a single string expression.
func rawParts(n *html.Node) []part {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil
	}
	return []part{{text: "{" + jsString(sb.String()) + "}"}}
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			space = true
		default:
			if space {
				sb.WriteByte(' ')
				space = false
			}
			sb.WriteRune(r)
		}
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"{", `{"{"}`,
	"}", `{"}"}`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// jsString quotes s as a double-quoted JavaScript string literal.
func jsString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			sb.WriteString(`\u` + hex4(r))
		default:
			if r < 0x20 {
				sb.WriteString(`\u` + hex4(r))
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func hex4(r rune) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{
		digits[(r>>12)&0xF],
		digits[(r>>8)&0xF],
		digits[(r>>4)&0xF],
		digits[r&0xF],
	})
}
