// Package guard lets value types detect that they were built by their constructor
// rather than declared as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into commands and queries. Its zero value fails
// Validate, the value returned by NewConstructorGuard passes.
//
// Example:
//
//	type ListOrdersQuery struct {
//	    guard guard.ConstructorGuard
//	}
//
//	func NewListOrdersQuery() ListOrdersQuery {
//	    return ListOrdersQuery{guard: guard.NewConstructorGuard()}
//	}
//
//	func (q ListOrdersQuery) Validate() error {
//	    return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
