//go:build !debug

package ldd

const debugEnabled = false

// debugf is a no-op in non-debug builds; kept so call sites never need a
// build-tag guard of their own.
func debugf(format string, args ...interface{}) {}
