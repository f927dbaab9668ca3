package jsxcorpus_test

import (
	"testing"

	"github.com/fwojciec/jsxcorpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeRule_Match(t *testing.T) {
	t.Parallel()

	t.Run("matches names case-insensitively", func(t *testing.T) {
		t.Parallel()

		r := jsxcorpus.AttributeRule{Name: "class"}

		assert.True(t, r.Match("div", "CLASS"))
		assert.False(t, r.Match("div", "classname"))
	})

	t.Run("matches prefixes", func(t *testing.T) {
		t.Parallel()

		r := jsxcorpus.AttributeRule{Prefix: "aria"}

		assert.True(t, r.Match("div", "aria-label"))
		assert.False(t, r.Match("div", "ari"))
	})

	t.Run("restricts the rule to the listed tags", func(t *testing.T) {
		t.Parallel()

		r := jsxcorpus.AttributeRule{Name: "src", Tags: []string{"img"}}

		assert.True(t, r.Match("IMG", "src"))
		assert.False(t, r.Match("script", "src"))
	})
}

func TestTransformSpec(t *testing.T) {
	t.Parallel()

	t.Run("drops attributes no rule allows", func(t *testing.T) {
		t.Parallel()

		spec := jsxcorpus.TransformSpec{Attributes: []jsxcorpus.AttributeRule{{Name: "class"}}}

		assert.True(t, spec.AllowAttribute("div", "class"))
		assert.False(t, spec.AllowAttribute("div", "onclick"))
	})

	t.Run("first matching tag rule wins", func(t *testing.T) {
		t.Parallel()

		spec := jsxcorpus.TransformSpec{Tags: []jsxcorpus.TagRule{
			{Match: "h1", To: "strong"},
			{Match: "h[1-6]", To: "p"},
		}}

		assert.Equal(t, "strong", spec.RemapTag("h1"))
		assert.Equal(t, "p", spec.RemapTag("h3"))
		assert.Equal(t, "div", spec.RemapTag("div"))
	})
}

func TestProfile_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts the default profiles", func(t *testing.T) {
		t.Parallel()

		profiles := jsxcorpus.DefaultProfiles()

		require.NoError(t, profiles.Validate())
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		p := &jsxcorpus.Profile{}

		assert.Equal(t, jsxcorpus.EINVALID, jsxcorpus.ErrorCode(p.Validate()))
	})

	t.Run("rejects rules with both name and prefix", func(t *testing.T) {
		t.Parallel()

		p := &jsxcorpus.Profile{Name: "x", Attributes: []jsxcorpus.AttributeRule{{Name: "id", Prefix: "data"}}}

		assert.Equal(t, jsxcorpus.EINVALID, jsxcorpus.ErrorCode(p.Validate()))
	})

	t.Run("rejects malformed tag patterns", func(t *testing.T) {
		t.Parallel()

		p := &jsxcorpus.Profile{Name: "x", Tags: []jsxcorpus.TagRule{{Match: "h[", To: "p"}}}

		assert.Equal(t, jsxcorpus.EINVALID, jsxcorpus.ErrorCode(p.Validate()))
	})

	t.Run("rejects tag rules without a target", func(t *testing.T) {
		t.Parallel()

		p := &jsxcorpus.Profile{Name: "x", Tags: []jsxcorpus.TagRule{{Match: "h1"}}}

		assert.Equal(t, jsxcorpus.EINVALID, jsxcorpus.ErrorCode(p.Validate()))
	})
}

func TestProfile_Spec(t *testing.T) {
	t.Parallel()

	t.Run("derives the component from the title", func(t *testing.T) {
		t.Parallel()

		p := &jsxcorpus.Profile{Name: "semantic"}

		assert.Equal(t, "gettingStartedComponent", p.Spec("Getting Started").Component)
	})

	t.Run("keeps a fixed component", func(t *testing.T) {
		t.Parallel()

		p := &jsxcorpus.Profile{Name: "visual", Component: "myComponent"}

		assert.Equal(t, "myComponent", p.Spec("Getting Started").Component)
	})

	t.Run("builds from a profile returned by value", func(t *testing.T) {
		t.Parallel()

		spec := jsxcorpus.DefaultProfiles().Input.Spec("x")

		assert.Equal(t, "myComponent", spec.Component)
	})
}

func TestDefaultProfiles(t *testing.T) {
	t.Parallel()

	profiles := jsxcorpus.DefaultProfiles()
	input := profiles.Input.Spec("Title")
	output := profiles.Output.Spec("Title")

	t.Run("input keeps only visual attributes", func(t *testing.T) {
		t.Parallel()

		assert.True(t, input.AllowAttribute("img", "srcset"))
		assert.False(t, input.AllowAttribute("div", "id"))
		assert.False(t, input.AllowAttribute("div", "aria-label"))
	})

	t.Run("output adds semantic attributes", func(t *testing.T) {
		t.Parallel()

		assert.True(t, output.AllowAttribute("div", "id"))
		assert.True(t, output.AllowAttribute("div", "aria-label"))
		assert.True(t, output.AllowAttribute("div", "itemprop"))
		assert.False(t, output.AllowAttribute("div", "onclick"))
	})

	t.Run("input flattens semantic tags", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "div", input.RemapTag("article"))
		assert.Equal(t, "p", input.RemapTag("h2"))
		assert.Equal(t, "span", input.RemapTag("figcaption"))
		assert.Equal(t, "a", input.RemapTag("a"))
	})

	t.Run("output keeps tags", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "article", output.RemapTag("article"))
	})
}
