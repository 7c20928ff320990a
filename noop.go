package expcache

// NoOp is a Registrar stub, caches bound to it are only swept manually.
type NoOp struct{}

var _ Registrar = NoOp{}

// Register discards target.
func (NoOp) Register(int64, Sweepable) {}

// Deregister does nothing.
func (NoOp) Deregister(int64) {}
