package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jsxcorpus"
	"github.com/fwojciec/jsxcorpus/jsx"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ jsxcorpus.MarkupTransformer = (*Transformer)(nil)

// Transformer filters attributes and renames elements of an HTML fragment
// and prints the result as a component module.
type Transformer struct{}

// NewTransformer creates a new Transformer.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Transform implements jsxcorpus.MarkupTransformer. The fragment is parsed
// in a <body> context, so document-level tags such as <html> and <head>
// are dropped while their content is kept.
func (t *Transformer) Transform(markup string, spec jsxcorpus.TransformSpec) (string, error) {
	nodes, err := parseFragment(markup)
	if err != nil {
		return "", err
	}

	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	// The selection is computed before Each runs, so renaming elements
	// while iterating is safe. Attributes are filtered against the
	// original tag name.
	goquery.NewDocumentFromNode(root).Find("*").Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		n.Attr = filterAttributes(n, spec)
		if to := spec.RemapTag(n.Data); to != n.Data {
			n.Data = to
			n.DataAtom = atom.Lookup([]byte(to))
		}
	})

	var children []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return jsx.Render(spec.Component, children)
}

func filterAttributes(n *html.Node, spec jsxcorpus.TransformSpec) []html.Attribute {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if spec.AllowAttribute(n.Data, jsx.QualifiedName(a)) {
			kept = append(kept, a)
		}
	}
	return kept
}

func parseFragment(markup string) ([]*html.Node, error) {
	if !utf8.ValidString(markup) {
		return nil, jsxcorpus.Errorf(jsxcorpus.EMARKUP, "markup is not valid UTF-8")
	}
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, jsxcorpus.Errorf(jsxcorpus.EMARKUP, "cannot parse markup: %v", err)
	}
	return nodes, nil
}
