package ldd

import "fmt"

// Exported sentinel errors that external loaders (internal/sylvan chief
// among them) wrap with call-site detail via fmt.Errorf's %w, so a caller
// can errors.Is against a fixed, small set of causes. The core store itself
// never returns an error value: a contract violation there is a programming
// error and panics instead.
var (
	ErrShortRead = fmt.Errorf("ldd: unexpected end of stream")
	ErrBadIndex  = fmt.Errorf("ldd: reference to an undefined node index")
)

// panicContract reports a violated precondition (a broken canonicity
// invariant, terminal misuse, cross-store handle mixing, an unknown cache
// tag, a read of a freed slot). These are never recoverable: the caller's
// code is wrong, not the store's state.
func panicContract(format string, args ...interface{}) {
	panic(fmt.Sprintf("ldd: contract violation: "+format, args...))
}
