package interfaces

// WritePolicy decides whether ledger writes are currently allowed. The writer
// consults it on every call, so operators can flip the gate without restarting
// anything that holds a Writer.
type WritePolicy interface {
	WritesEnabled() bool
}

// StaticWritePolicy is a fixed-answer policy, handy for wiring and tests.
type StaticWritePolicy bool

func (p StaticWritePolicy) WritesEnabled() bool { return bool(p) }
