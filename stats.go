package triplebuffer

// Stats is a snapshot of a TripleBuffer's counters. The counters are read
// individually, so a snapshot taken while both sides are active may be
// slightly inconsistent.
type Stats struct {
	Published uint64 // calls to Publish, including those made by Write
	Dropped   uint64 // published values overwritten before the reader claimed them
	Updates   uint64 // handoffs to the reader
}

// Stats returns the current counters of tb. It is safe to call from any
// goroutine.
func (tb *TripleBuffer[T]) Stats() Stats {
	return Stats{
		Published: tb.published.Load(),
		Dropped:   tb.dropped.Load(),
		Updates:   tb.updates.Load(),
	}
}
