//go:build debug

package ldd

import "log"

const debugEnabled = true

// debugf logs a diagnostic line when the module is built with the debug
// build tag, gating verbose GC/cache/table diagnostics behind a build tag
// instead of a runtime flag.
func debugf(format string, args ...interface{}) {
	log.Printf("ldd(debug): "+format, args...)
}
