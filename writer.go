package triplebuffer

// Writer is the producer side of a TripleBuffer. It must be used by one
// goroutine at a time.
type Writer[T any] struct {
	tb     *TripleBuffer[T]
	closed bool
}

func (w *Writer[T]) buffer() *TripleBuffer[T] {
	if w.closed {
		panic(ErrClosed)
	}
	return w.tb
}

// InputBuffer returns the slot currently owned by the writer. It may be
// modified freely; the reader does not see any of it until Publish is
// called. The pointer must not be used after the next Publish.
func (w *Writer[T]) InputBuffer() *T {
	tb := w.buffer()
	return &tb.slots[tb.inputIdx()]
}

// Write replaces the writer's slot with v and publishes it.
func (w *Writer[T]) Write(v T) {
	*w.InputBuffer() = v
	w.Publish()
}

// Publish hands the writer's slot to the reader and takes over the previous
// back slot for the next write. It reports whether the previously published
// value was overwritten before the reader claimed it. Publish never waits
// for the reader.
func (w *Writer[T]) Publish() bool {
	tb := w.buffer()

	prev := tb.back.Swap(tb.inputIdx() | dirtyBit)
	tb.setInputIdx(prev & backIndexMask)
	tb.published.Add(1)

	overwritten := prev&dirtyBit != 0
	if overwritten {
		tb.dropped.Add(1)
		tb.reporter().Alert(1)
	}
	return overwritten
}

// Consumed reports whether the reader has claimed the most recently
// published value.
func (w *Writer[T]) Consumed() bool {
	return w.buffer().back.Load()&dirtyBit == 0
}

// Close releases the handle so that another Writer can be taken from the
// buffer. Calling Close more than once has no effect.
func (w *Writer[T]) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.tb.writerExists.Store(false)
}
