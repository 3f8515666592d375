package binding

import "fmt"

// Get returns the input name from in as a T.
func Get[T any](in Values, name string) (T, error) {
	var zero T

	raw, ok := in[name]
	if !ok {
		return zero, fmt.Errorf("input %q is not set", name)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("input %q has type %T, want %T", name, raw, zero)
	}
	return v, nil
}
