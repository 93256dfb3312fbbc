package triplebuffer

type options struct {
	rep Reporter
}

// Option configures how we set up the triple buffer.
type Option interface {
	apply(*options)
}

// optionFunc wraps a function that modifies options into an implementation of
// the Option interface.
type optionFunc struct {
	f func(*options)
}

func (of *optionFunc) apply(o *options) {
	of.f(o)
}

// WithReporter returns an Option which sets a Reporter for the triple buffer
// to alert when a published value is overwritten before it was read.
func WithReporter(r Reporter) Option {
	return &optionFunc{
		f: func(o *options) {
			o.rep = r
		},
	}
}
