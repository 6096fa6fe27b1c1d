//go:build debug_hugecache

package memutils

// DebugValidate calls Validate on validatable and panics if it returns an
// error. Invariant violations - overlapping or adjacent free ranges, double
// frees - are programmer errors the caller cannot recover from, so a panic
// is the correct failure mode, but it is only checked under the
// debug_hugecache build tag so the hot path pays nothing in production.
func DebugValidate(validatable Validatable) {
	if err := validatable.Validate(); err != nil {
		panic(err)
	}
}

// DebugCheckPow2 panics if value is not a power of two. No-ops unless the
// debug_hugecache build tag is present.
func DebugCheckPow2[T Number](value T, name string) {
	if err := CheckPow2[T](value, name); err != nil {
		panic(err)
	}
}

// Debugging is true when built with the debug_hugecache tag.
const Debugging = true
