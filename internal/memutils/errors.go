// Package memutils collects small, dependency-light helpers shared by the
// cache's internal packages: alignment arithmetic and a build-tag-gated
// invariant validation toolkit. None of it is hugepage-cache specific.
package memutils

import "github.com/pkg/errors"

// PowerOfTwoError is returned from CheckPow2 when the tested value is not a
// power of two.
var PowerOfTwoError error = errors.New("number must be a power of two")
