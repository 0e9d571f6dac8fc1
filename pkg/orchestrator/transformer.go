package orchestrator

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-hotelsite/pkg/render"
)

// Transformer mutates a built Page before it is rendered. Implementations
// can inject data, rename templates or adjust the status.
type Transformer interface {
	Transform(ctx context.Context, page *render.Page) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, page *render.Page) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, page *render.Page) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, page)
}

// ChainTransformers runs transformers in order, stopping at the first error.
func ChainTransformers(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, page *render.Page) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, page); err != nil {
				return err
			}
		}
		return nil
	})
}

// CanonicalURL records each page's absolute address under base as
// data.canonical, without the filter query. Error pages and an empty base
// are left alone.
func CanonicalURL(base string) Transformer {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	return TransformerFunc(func(_ context.Context, page *render.Page) error {
		if base == "" || page.Path == "" || page.Status >= http.StatusBadRequest {
			return nil
		}
		page.Data["canonical"] = base + page.Path
		return nil
	})
}

// NoIndexErrors marks error responses, including re-rendered rejected
// forms, with data.robots so crawlers skip them.
func NoIndexErrors() Transformer {
	return TransformerFunc(func(_ context.Context, page *render.Page) error {
		if page.Status >= http.StatusBadRequest {
			page.Data["robots"] = "noindex"
		}
		return nil
	})
}
