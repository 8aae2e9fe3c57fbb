package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan starts a span for one source file. An empty parent means the span
// of ctx.
type NewSpan func(ctx context.Context, file string, parent Span) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, file string, parent Span) (context.Context, Span) {

		creatorSpan := SpanOf(ctx)
		if parent == "" {
			parent = creatorSpan
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)
		if file != "" {
			ctx = WithFile(ctx, file)
		}

		var args []any
		if creatorSpan != "" && creatorSpan != parent {
			args = append(args, "creator", creatorSpan)
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}
