package triplebuffer

import (
	"context"
)

// Waiter holds both handles of a triple buffer and uses a channel signal to
// alert the reader to when a new value is published. The writing methods
// (Write, InputBuffer, Publish) and Next may be called from different
// goroutines, but each from one goroutine at a time.
type Waiter[T any] struct {
	w   *Writer[T]
	r   *Reader[T]
	c   chan struct{}
	ctx context.Context
}

type waiterConfig struct {
	ctx context.Context
}

// WaiterConfigOption can be used to setup the waiter.
type WaiterConfigOption func(*waiterConfig)

// WithWaiterContext sets the context to cancel any retrieval (Next()). It
// will not change any results for publishing values (Write()). Default is
// context.Background().
func WithWaiterContext(ctx context.Context) WaiterConfigOption {
	return WaiterConfigOption(func(c *waiterConfig) {
		c.ctx = ctx
	})
}

// NewWaiter takes the Writer and Reader of tb and returns a Waiter that
// wraps them. It returns ErrWriterExists or ErrReaderExists if either
// handle is already open.
func NewWaiter[T any](tb *TripleBuffer[T], opts ...WaiterConfigOption) (*Waiter[T], error) {
	c := waiterConfig{ctx: context.Background()}
	for _, opt := range opts {
		opt(&c)
	}

	w, ok := tb.TryWriter()
	if !ok {
		return nil, ErrWriterExists
	}
	r, ok := tb.TryReader()
	if !ok {
		w.Close()
		return nil, ErrReaderExists
	}

	return &Waiter[T]{
		w:   w,
		r:   r,
		c:   make(chan struct{}, 1),
		ctx: c.ctx,
	}, nil
}

// Write publishes v and wakes up the reader.
func (w *Waiter[T]) Write(v T) {
	w.w.Write(v)
	w.broadcast()
}

// InputBuffer returns the writer's slot. See Writer.InputBuffer.
func (w *Waiter[T]) InputBuffer() *T {
	return w.w.InputBuffer()
}

// Publish publishes the writer's slot and wakes up the reader. It reports
// whether the previous value was overwritten unread.
func (w *Waiter[T]) Publish() bool {
	overwritten := w.w.Publish()
	w.broadcast()
	return overwritten
}

// broadcast sends to the channel if it can.
func (w *Waiter[T]) broadcast() {
	select {
	case w.c <- struct{}{}:
	default:
	}
}

// Next returns the latest published value. If there is no new value, it
// will wait for one to be published or the context to be done. If the
// context is done, the value the reader already held is returned along
// with false.
func (w *Waiter[T]) Next() (T, bool) {
	for {
		if w.r.Update() {
			return *w.r.OutputBuffer(), true
		}
		select {
		case <-w.ctx.Done():
			return *w.r.OutputBuffer(), false
		case <-w.c:
		}
	}
}

// Close releases both handles. It must not be called concurrently with any
// other method.
func (w *Waiter[T]) Close() {
	w.w.Close()
	w.r.Close()
}
