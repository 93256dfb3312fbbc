package triplebuffer

// Reader is the consumer side of a TripleBuffer. It must be used by one
// goroutine at a time.
type Reader[T any] struct {
	tb     *TripleBuffer[T]
	closed bool
}

func (r *Reader[T]) buffer() *TripleBuffer[T] {
	if r.closed {
		panic(ErrClosed)
	}
	return r.tb
}

// Updated reports whether a value newer than the one in the reader's slot
// has been published.
func (r *Reader[T]) Updated() bool {
	return r.buffer().back.Load()&dirtyBit != 0
}

// Update claims the latest published value, if there is one the reader has
// not seen yet, and reports whether it did. Update never waits for the
// writer.
func (r *Reader[T]) Update() bool {
	if !r.Updated() {
		return false
	}

	tb := r.tb
	// Only the writer sets the dirty bit, so handing back the old output
	// index also marks the back slot as consumed.
	prev := tb.back.Swap(tb.outputIdx())
	tb.setOutputIdx(prev & backIndexMask)
	tb.updates.Add(1)
	return true
}

// OutputBuffer returns the slot currently owned by the reader without
// checking for newer values. The pointer must not be used after the next
// Update.
func (r *Reader[T]) OutputBuffer() *T {
	tb := r.buffer()
	return &tb.slots[tb.outputIdx()]
}

// Read returns a copy of the latest published value. If nothing was
// published since the last call, it returns the same value again.
func (r *Reader[T]) Read() T {
	r.Update()
	return *r.OutputBuffer()
}

// Close releases the handle so that another Reader can be taken from the
// buffer. Calling Close more than once has no effect.
func (r *Reader[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.tb.readerExists.Store(false)
}
