package vect

// Reader is a readable vector.  It is implemented by both Vector (in
// memory, read/write) and snapshot.Disk (file backed, read only).
type Reader interface {
	Len() uint
	Stride() uint
	At(ix uint) []byte
}

var _ Reader = (*Vector)(nil)
