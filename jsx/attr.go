package jsx

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// propNames maps HTML attribute names to React prop names where the two
// differ by more than hyphen removal.
var propNames = map[string]string{
	"accept-charset":  "acceptCharset",
	"accesskey":       "accessKey",
	"allowfullscreen": "allowFullScreen",
	"autocomplete":    "autoComplete",
	"autofocus":       "autoFocus",
	"autoplay":        "autoPlay",
	"cellpadding":     "cellPadding",
	"cellspacing":     "cellSpacing",
	"charset":         "charSet",
	"class":           "className",
	"colspan":         "colSpan",
	"contenteditable": "contentEditable",
	"crossorigin":     "crossOrigin",
	"datetime":        "dateTime",
	"enctype":         "encType",
	"enterkeyhint":    "enterKeyHint",
	"fetchpriority":   "fetchPriority",
	"for":             "htmlFor",
	"formaction":      "formAction",
	"frameborder":     "frameBorder",
	"hreflang":        "hrefLang",
	"http-equiv":      "httpEquiv",
	"inputmode":       "inputMode",
	"ismap":           "isMap",
	"itemid":          "itemID",
	"itemprop":        "itemProp",
	"itemref":         "itemRef",
	"itemscope":       "itemScope",
	"itemtype":        "itemType",
	"marginheight":    "marginHeight",
	"marginwidth":     "marginWidth",
	"maxlength":       "maxLength",
	"minlength":       "minLength",
	"novalidate":      "noValidate",
	"playsinline":     "playsInline",
	"readonly":        "readOnly",
	"referrerpolicy":  "referrerPolicy",
	"rowspan":         "rowSpan",
	"spellcheck":      "spellCheck",
	"srcdoc":          "srcDoc",
	"srclang":         "srcLang",
	"srcset":          "srcSet",
	"tabindex":        "tabIndex",
	"usemap":          "useMap",
}

// booleanProps are printed without a value when the HTML attribute is empty.
var booleanProps = map[string]bool{
	"allowFullScreen": true,
	"async":           true,
	"autoFocus":       true,
	"autoPlay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"hidden":          true,
	"itemScope":       true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"noValidate":      true,
	"open":            true,
	"playsInline":     true,
	"readOnly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

// QualifiedName returns the attribute name as written in HTML, including
// a foreign namespace prefix such as "xlink:".
func QualifiedName(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}

// PropName converts an HTML attribute name to its JSX prop name.
// aria-* and data-* attributes keep their HTML names.
func PropName(attr string) string {
	lower := strings.ToLower(attr)
	if strings.HasPrefix(lower, "aria-") || strings.HasPrefix(lower, "data-") {
		return lower
	}
	if name, ok := propNames[lower]; ok {
		return name
	}
	if strings.ContainsAny(attr, "-:") {
		return camelCase(attr, "-:")
	}
	return attr
}

// attributes renders the attributes of n in document order.
func attributes(n *html.Node) []string {
	var out []string
	for _, a := range n.Attr {
		name := PropName(QualifiedName(a))
		if name == "style" {
			obj := styleObject(a.Val)
			if obj == "" {
				continue
			}
			out = append(out, "style={{ "+obj+" }}")
			continue
		}
		if a.Val == "" && booleanProps[name] {
			out = append(out, name)
			continue
		}
		out = append(out, name+`="`+attrEscaper.Replace(a.Val)+`"`)
	}
	return out
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
)

// styleObject converts an inline CSS declaration list into the body of a
// JavaScript object literal. Returns "" when there are no declarations.
func styleObject(css string) string {
	var entries []string
	for _, decl := range splitDeclarations(css) {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		entries = append(entries, styleKey(prop)+": "+jsString(value))
	}
	return strings.Join(entries, ", ")
}

// splitDeclarations splits on semicolons outside parentheses and quotes.
func splitDeclarations(css string) []string {
	var out []string
	depth := 0
	var quote rune
	start := 0
	for i, r := range css {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			out = append(out, css[start:i])
			start = i + 1
		}
	}
	return append(out, css[start:])
}

// styleKey converts a CSS property to a React style key. Custom properties
// are quoted; vendor prefixes follow React's casing (WebkitX, msX).
func styleKey(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return jsString(prop)
	}
	prop = strings.ToLower(prop)
	if strings.HasPrefix(prop, "-ms-") {
		return camelCase(prop[1:], "-")
	}
	if strings.HasPrefix(prop, "-") {
		key := camelCase(prop[1:], "-")
		return strings.ToUpper(key[:1]) + key[1:]
	}
	return camelCase(prop, "-")
}

// camelCase joins the parts of s split on any of seps, capitalizing all
// but the first.
func camelCase(s, seps string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	var sb strings.Builder
	for i, f := range fields {
		if i == 0 {
			sb.WriteString(f)
			continue
		}
		runes := []rune(f)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}
