package memutils

import (
	cerrors "github.com/cockroachdb/errors"
)

// Number constrains the operand types accepted by the helpers below.
type Number interface {
	~int | ~uint | ~int64 | ~uint64
}

// CheckPow2 reports an error if number is not a power of two. Used at
// construction time to validate the coarse epoch count.
func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the nearest multiple of alignment.
func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// AlignDown rounds value down to the nearest multiple of alignment.
func AlignDown(value int, alignment uint) int {
	return value & int(^(alignment - 1))
}
