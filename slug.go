package jsxcorpus

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify creates a URL-safe slug from a title.
// Converts to lowercase, keeps ASCII letters and digits, and joins the
// remaining runs with single hyphens. Returns "" when nothing is left.
func Slugify(title string) string {
	var sb strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			pendingHyphen = false
		} else {
			pendingHyphen = true
		}
	}

	return sb.String()
}

// Slugger assigns unique slugs within one output unit.
// Duplicates get numeric suffixes: "intro", "intro-1", "intro-2".
type Slugger struct {
	used map[string]bool
	next map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{used: make(map[string]bool), next: make(map[string]int)}
}

// Slug returns a unique slug for title, using fallback when the title
// yields no slug characters.
func (s *Slugger) Slug(title, fallback string) string {
	base := Slugify(title)
	if base == "" {
		base = fallback
	}

	slug := base
	n := s.next[base]
	for s.used[slug] {
		n++
		slug = base + "-" + strconv.Itoa(n)
	}
	s.next[base] = n
	s.used[slug] = true
	return slug
}

// componentWords is the number of title words used in a derived component name.
const componentWords = 4

// ComponentName derives an exported component name from a page title:
// digits are dropped, the first four words are camel-cased and
// "Component" is appended. An empty result falls back to "pageComponent".
func ComponentName(title string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, title)

	fields := strings.Fields(stripped)
	if len(fields) > componentWords {
		fields = fields[:componentWords]
	}

	var words []string
	for _, field := range fields {
		words = append(words, strings.FieldsFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r)
		})...)
	}

	var sb strings.Builder
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if i > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		sb.WriteString(string(runes))
	}

	if sb.Len() == 0 {
		return "pageComponent"
	}
	return sb.String() + "Component"
}
