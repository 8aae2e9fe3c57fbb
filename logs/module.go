package logs

import (
	"context"

	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

// Span identifies one unit of pipeline work, usually one source file.
type Span string

type spanKey struct{}

var SpanKey = spanKey{}

type fileKey struct{}

// WithFile marks records logged under ctx with the source file path.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKey{}, path)
}

func FileOf(ctx context.Context) string {
	v, _ := ctx.Value(fileKey{}).(string)
	return v
}

func SpanOf(ctx context.Context) Span {
	v, _ := ctx.Value(SpanKey).(Span)
	return v
}
