package triplebuffer

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// The back state word packs the index of the back slot with a dirty bit that
// is set while the back slot holds a value the reader has not claimed.
const (
	backIndexMask uint32 = 0b011
	dirtyBit      uint32 = 0b100
)

// Slot layout of a freshly constructed buffer. The input and output indices
// are stored XORed with their initial slot so that a zero TripleBuffer decodes
// to this layout.
const (
	initialBack   uint32 = 0
	initialInput  uint32 = 1
	initialOutput uint32 = 2
)

var (
	// ErrWriterExists is the panic value of Writer when another Writer is
	// still open on the same buffer.
	ErrWriterExists = errors.New("triple buffer writer already exists")

	// ErrReaderExists is the panic value of Reader when another Reader is
	// still open on the same buffer.
	ErrReaderExists = errors.New("triple buffer reader already exists")

	// ErrClosed is the panic value of any method called on a closed handle.
	ErrClosed = errors.New("use of closed triple buffer handle")
)

// TripleBuffer hands the latest value of type T from a single writer to a
// single reader without either side ever blocking the other. A slow reader
// does not push back on the writer: values it has not claimed are
// overwritten, and the reader always sees the most recently published one.
//
// Three slots rotate between the writer, the reader and a shared back slot.
// Ownership moves with a single atomic swap per handoff, so every slot is
// only ever accessed by the side that currently owns it.
//
// A zero TripleBuffer is ready for use with three zero-valued slots, and can
// be declared as a package-level variable without further initialization.
// It must not be copied after first use.
type TripleBuffer[T any] struct {
	slots [3]T
	opts  options

	_    cpu.CacheLinePad
	back atomic.Uint32 // back slot index | dirtyBit

	_         cpu.CacheLinePad
	input     atomic.Uint32 // writer's slot ^ initialInput
	published atomic.Uint64
	dropped   atomic.Uint64

	_       cpu.CacheLinePad
	output  atomic.Uint32 // reader's slot ^ initialOutput
	updates atomic.Uint64

	_            cpu.CacheLinePad
	writerExists atomic.Bool
	readerExists atomic.Bool
}

// New creates a triple buffer whose slots start out holding s0, s1 and s2.
// s1 is the writer's first input slot and s2 is what the reader sees until
// the first publish.
func New[T any](s0, s1, s2 T, opts ...Option) *TripleBuffer[T] {
	tb := &TripleBuffer[T]{
		slots: [3]T{s0, s1, s2},
	}

	for _, opt := range opts {
		opt.apply(&tb.opts)
	}

	return tb
}

// NewFunc creates a triple buffer with each slot initialized by a separate
// call to gen. gen is called exactly three times before NewFunc returns.
func NewFunc[T any](gen func() T, opts ...Option) *TripleBuffer[T] {
	return New(gen(), gen(), gen(), opts...)
}

// Writer returns the write handle of tb. Only one Writer may be open at a
// time; calling Writer while another is open panics with ErrWriterExists.
// Close the handle to allow another Writer to be taken.
func (tb *TripleBuffer[T]) Writer() *Writer[T] {
	w, ok := tb.TryWriter()
	if !ok {
		panic(ErrWriterExists)
	}
	return w
}

// TryWriter is like Writer, but reports false instead of panicking when
// another Writer is open.
func (tb *TripleBuffer[T]) TryWriter() (*Writer[T], bool) {
	if !acquire(&tb.writerExists) {
		return nil, false
	}
	return &Writer[T]{tb: tb}, true
}

// Reader returns the read handle of tb. Only one Reader may be open at a
// time; calling Reader while another is open panics with ErrReaderExists.
// Close the handle to allow another Reader to be taken.
func (tb *TripleBuffer[T]) Reader() *Reader[T] {
	r, ok := tb.TryReader()
	if !ok {
		panic(ErrReaderExists)
	}
	return r
}

// TryReader is like Reader, but reports false instead of panicking when
// another Reader is open.
func (tb *TripleBuffer[T]) TryReader() (*Reader[T], bool) {
	if !acquire(&tb.readerExists) {
		return nil, false
	}
	return &Reader[T]{tb: tb}, true
}

// acquire sets flag and reports whether it was previously clear. A failed
// swap followed by a clear flag means a handle was released in between, so
// the swap is retried.
func acquire(flag *atomic.Bool) bool {
	for {
		if flag.CompareAndSwap(false, true) {
			return true
		}
		if flag.Load() {
			return false
		}
	}
}

func (tb *TripleBuffer[T]) inputIdx() uint32 {
	return tb.input.Load() ^ initialInput
}

func (tb *TripleBuffer[T]) setInputIdx(idx uint32) {
	tb.input.Store(idx ^ initialInput)
}

func (tb *TripleBuffer[T]) outputIdx() uint32 {
	return tb.output.Load() ^ initialOutput
}

func (tb *TripleBuffer[T]) setOutputIdx(idx uint32) {
	tb.output.Store(idx ^ initialOutput)
}

func (tb *TripleBuffer[T]) reporter() Reporter {
	if tb.opts.rep == nil {
		return reporter{}
	}
	return tb.opts.rep
}
