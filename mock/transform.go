package mock

import "github.com/fwojciec/jsxcorpus"

var _ jsxcorpus.MarkupTransformer = (*MarkupTransformer)(nil)

// MarkupTransformer is a mock implementation of jsxcorpus.MarkupTransformer.
type MarkupTransformer struct {
	TransformFn func(html string, spec jsxcorpus.TransformSpec) (string, error)
}

func (t *MarkupTransformer) Transform(html string, spec jsxcorpus.TransformSpec) (string, error) {
	return t.TransformFn(html, spec)
}
