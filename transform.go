package jsxcorpus

import (
	"path"
	"strings"
)

// AttributeRule allows attributes by exact name or by name prefix.
// Names are compared case-insensitively.
type AttributeRule struct {
	Name   string `json:"name,omitempty"`
	Prefix string `json:"prefix,omitempty"`

	// Tags restricts the rule to the listed elements. Empty means any element.
	Tags []string `json:"tags,omitempty"`
}

// Match reports whether the rule allows attr on an element named tag.
func (r AttributeRule) Match(tag, attr string) bool {
	if len(r.Tags) > 0 && !containsFold(r.Tags, tag) {
		return false
	}
	if r.Name != "" {
		return strings.EqualFold(r.Name, attr)
	}
	if r.Prefix != "" {
		return len(attr) >= len(r.Prefix) && strings.EqualFold(attr[:len(r.Prefix)], r.Prefix)
	}
	return false
}

// TagRule renames elements whose tag matches a path.Match pattern.
type TagRule struct {
	Match string `json:"match"`
	To    string `json:"to"`
}

// TransformSpec is the per-call input of a MarkupTransformer.
type TransformSpec struct {
	// Attributes lists the allowed attributes. Attributes matching no rule
	// are removed.
	Attributes []AttributeRule

	// Tags is an ordered rename table; the first matching rule wins.
	// Nil leaves every tag unchanged.
	Tags []TagRule

	// Component is the exported component name.
	Component string
}

// AllowAttribute reports whether attr survives on an element named tag.
func (s TransformSpec) AllowAttribute(tag, attr string) bool {
	for _, r := range s.Attributes {
		if r.Match(tag, attr) {
			return true
		}
	}
	return false
}

// RemapTag returns the new name for tag, or tag itself when no rule matches.
func (s TransformSpec) RemapTag(tag string) string {
	for _, r := range s.Tags {
		if ok, _ := path.Match(r.Match, tag); ok {
			return r.To
		}
	}
	return tag
}

// MarkupTransformer converts an HTML fragment into a formatted
// component-template source file.
type MarkupTransformer interface {
	// Transform parses html, filters attributes and remaps tags according
	// to spec and returns the formatted source.
	// Returns EMARKUP if html is not a parseable fragment and EFORMAT if the
	// generated source is not well-formed.
	Transform(html string, spec TransformSpec) (string, error)
}

// Profile is a named transform configuration for one side of a training pair.
type Profile struct {
	Name string `json:"name"`

	// Component is a fixed component name. When empty the name is derived
	// from the record title with ComponentName.
	Component string `json:"component,omitempty"`

	Attributes []AttributeRule `json:"attributes"`
	Tags       []TagRule       `json:"tags,omitempty"`
}

// Validate returns an error if the profile contains invalid rules.
func (p Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	for _, r := range p.Attributes {
		if (r.Name == "") == (r.Prefix == "") {
			return Errorf(EINVALID, "profile %q: attribute rule needs exactly one of name or prefix", p.Name)
		}
	}
	for _, r := range p.Tags {
		if _, err := path.Match(r.Match, ""); err != nil {
			return Errorf(EINVALID, "profile %q: invalid tag pattern %q", p.Name, r.Match)
		}
		if r.To == "" {
			return Errorf(EINVALID, "profile %q: tag rule %q has no target", p.Name, r.Match)
		}
	}
	return nil
}

// Spec builds the transform input for a record with the given title.
func (p Profile) Spec(title string) TransformSpec {
	component := p.Component
	if component == "" {
		component = ComponentName(title)
	}
	return TransformSpec{
		Attributes: p.Attributes,
		Tags:       p.Tags,
		Component:  component,
	}
}

// Profiles holds the two sides of a training pair.
type Profiles struct {
	Input  Profile `json:"input"`
	Output Profile `json:"output"`
}

// Validate returns an error if either profile is invalid.
func (p *Profiles) Validate() error {
	if err := p.Input.Validate(); err != nil {
		return err
	}
	return p.Output.Validate()
}

// visualAttributes are the layout, media and link attributes kept on the
// input side.
var visualAttributes = []string{
	"class", "style", "href", "loading", "target", "src", "srcset", "aria-hidden",
}

// semanticAttributes are added to visualAttributes on the output side.
var semanticAttributes = []string{
	"id", "lang", "dir", "role", "type", "placeholder",
}

// DefaultProfiles returns the visual-only input profile and the semantic
// output profile.
func DefaultProfiles() Profiles {
	var visual, semantic []AttributeRule
	for _, name := range visualAttributes {
		visual = append(visual, AttributeRule{Name: name})
		semantic = append(semantic, AttributeRule{Name: name})
	}
	for _, name := range semanticAttributes {
		semantic = append(semantic, AttributeRule{Name: name})
	}
	semantic = append(semantic,
		AttributeRule{Prefix: "aria"},
		AttributeRule{Prefix: "item"},
	)

	var flatten []TagRule
	for _, tag := range []string{
		"article", "section", "main", "figure", "ul", "li",
		"label", "input", "button", "form", "fieldset",
	} {
		flatten = append(flatten, TagRule{Match: tag, To: "div"})
	}
	flatten = append(flatten,
		TagRule{Match: "h[1-6]", To: "p"},
		TagRule{Match: "header", To: "p"},
		TagRule{Match: "hgroup", To: "p"},
		TagRule{Match: "figcaption", To: "span"},
	)

	return Profiles{
		Input: Profile{
			Name:       "visual",
			Component:  "myComponent",
			Attributes: visual,
			Tags:       flatten,
		},
		Output: Profile{
			Name:       "semantic",
			Attributes: semantic,
		},
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
