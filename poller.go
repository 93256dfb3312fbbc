package triplebuffer

import (
	"context"
	"time"
)

// Source is the read side of a triple buffer. *Reader implements it.
type Source[T any] interface {
	Update() bool
	OutputBuffer() *T
}

var _ Source[int] = (*Reader[int])(nil)

// Poller will poll a Source until a new value is available
type Poller[T any] struct {
	src      Source[T]
	interval time.Duration
	ctx      context.Context
}

type pollerConfig struct {
	interval time.Duration
	ctx      context.Context
}

// PollerConfigOption can be used to setup the poller
type PollerConfigOption func(*pollerConfig)

// WithPollingInterval sets the interval at which the source is queried
// for new data. The default is 10ms.
func WithPollingInterval(interval time.Duration) PollerConfigOption {
	return PollerConfigOption(func(c *pollerConfig) {
		c.interval = interval
	})
}

// WithPollerContext sets the context to cancel any retrieval (Next()).
// Default is context.Background().
func WithPollerContext(ctx context.Context) PollerConfigOption {
	return PollerConfigOption(func(c *pollerConfig) {
		c.ctx = ctx
	})
}

// NewPoller wraps a Source to allow waiting for new values via polling
func NewPoller[T any](src Source[T], opts ...PollerConfigOption) *Poller[T] {
	c := pollerConfig{
		interval: 10 * time.Millisecond,
		ctx:      context.Background(),
	}

	for _, o := range opts {
		o(&c)
	}

	return &Poller[T]{
		src:      src,
		interval: c.interval,
		ctx:      c.ctx,
	}
}

// Next polls the source until a new value is available and returns a copy
// of it. If the context ends first, Next returns the value the source
// already held and false.
func (p *Poller[T]) Next() (T, bool) {
	var t *time.Timer
	for {
		if p.src.Update() {
			return *p.src.OutputBuffer(), true
		}

		if t == nil {
			t = time.NewTimer(p.interval)
			defer t.Stop()
		} else {
			t.Reset(p.interval)
		}

		select {
		case <-p.ctx.Done():
			return *p.src.OutputBuffer(), false
		case <-t.C:
		}
	}
}
