// Package triplebuffer implements a wait-free triple buffer that hands the
// latest value from a single writer to a single reader. The writer is never
// pushed back on: values the reader was too slow to claim are overwritten,
// and the reader always sees the most recently published one.
package triplebuffer
