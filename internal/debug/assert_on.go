//go:build assert

package debug

// Assert panics with msg if cond is false.
func Assert(cond bool, msg string) {
	if !cond {
		panic("bridge: " + msg)
	}
}
