// Package options implements the generic functional options shared by the
// library, the table encoder and the container writer.
package options

// Option configures a target of type T. Options are applied in order and the
// first error aborts configuration.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to Option.
type Func[T any] struct {
	fn func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.fn(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		fn: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order. Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
