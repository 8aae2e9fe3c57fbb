package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan annotates err with the file and span of ctx.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if file := FileOf(ctx); file != "" {
		err = fmt.Errorf("%s: %w", file, err)
	}
	if span := SpanOf(ctx); span != "" {
		err = errors.Join(err, fmt.Errorf("span: %s", span))
	}
	return err
}
