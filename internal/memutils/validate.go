package memutils

// Validatable is implemented by any internal structure that can check its
// own consistency invariants. DebugValidate uses it to turn a violation into
// a panic in debug builds without paying the cost in production.
type Validatable interface {
	Validate() error
}
