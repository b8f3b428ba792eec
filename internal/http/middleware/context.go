package middlewarex

import (
	"context"

	"trustcms/internal/form"
)

type ctxKey string

const (
	ctxNormalizedForm ctxKey = "normalized_form"
)

func WithNormalizedForm(ctx context.Context, v form.Values) context.Context {
	return context.WithValue(ctx, ctxNormalizedForm, v)
}

// NormalizedForm returns the request body stored by Normalize.
func NormalizedForm(ctx context.Context) (form.Values, bool) {
	v, ok := ctx.Value(ctxNormalizedForm).(form.Values)
	return v, ok
}
