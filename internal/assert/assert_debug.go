//go:build debug

package assert

// Enabled reports whether assertions are compiled in.
const Enabled = true

// True panics with an *AssertionError when ok is false.
func True(ok bool, format string, args ...any) {
	if !ok {
		panic(newError(format, args...))
	}
}
