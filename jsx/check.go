package jsx

import (
	"regexp"

	"github.com/beevik/etree"
	"github.com/fwojciec/jsxcorpus"
	"golang.org/x/net/html"
)

// identifierRe matches a JavaScript identifier made of letters, digits,
// underscores and dollar signs.
var identifierRe = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{Nd}_$]*$`)

var reserved = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// IsIdentifier reports whether name can be used as a function name.
func IsIdentifier(name string) bool {
	return identifierRe.MatchString(name) && !reserved[name]
}

// Check reports whether the element structure of nodes can be printed as
// well-formed JSX. It mirrors the tree into an XML document and reads it
// back in strict mode, which rejects tag and attribute names that JSX
// cannot express. Returns EFORMAT on failure.
func Check(nodes []*html.Node) error {
	doc := etree.NewDocument()
	root := doc.CreateElement("root")
	for _, n := range nodes {
		mirror(root, n)
	}

	s, err := doc.WriteToString()
	if err != nil {
		return jsxcorpus.Errorf(jsxcorpus.EFORMAT, "cannot serialize markup: %v", err)
	}

	strict := etree.NewDocument()
	strict.ReadSettings.Permissive = false
	if err := strict.ReadFromString(s); err != nil {
		return jsxcorpus.Errorf(jsxcorpus.EFORMAT, "markup is not well-formed: %v", err)
	}
	return nil
}

// mirror copies the elements of n under parent, with attribute names
// converted to props. Attribute values and text are irrelevant to
// well-formedness and are left out.
func mirror(parent *etree.Element, n *html.Node) {
	if n.Type != html.ElementNode {
		return
	}
	el := parent.CreateElement(n.Data)
	for _, a := range n.Attr {
		el.CreateAttr(PropName(QualifiedName(a)), "")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		mirror(el, c)
	}
}
