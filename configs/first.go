package configs

import (
	"errors"
	"iter"
)

// First decodes the first value at path. A missing value is the zero value,
// an unreadable or mistyped config panics.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}

// All decodes every value at path, most specific file first.
func All[T any](loader Loader, path string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for value, err := range loader.IterCueValues(path) {
			var v T
			if err == nil {
				err = value.Decode(&v)
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
