//go:build !debug_hugecache

package memutils

// DebugValidate no-ops unless the debug_hugecache build tag is present.
func DebugValidate(validatable Validatable) {}

// DebugCheckPow2 no-ops unless the debug_hugecache build tag is present.
func DebugCheckPow2[T Number](value T, name string) {}

// Debugging is true when built with the debug_hugecache tag.
const Debugging = false
