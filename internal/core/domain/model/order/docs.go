// Package order provides the Order aggregate of the point-of-sale relay.
//
// The package includes:
//   - Order: one table's order, immutable except for its status
//   - Details: the validated, normalized fields a waiter submits
//   - Status: the closed set new, preparing, ready
//
// Key business rules:
//   - table numbers are positive integers
//   - an order carries at least one non-blank item
//   - orders start as new and may move between any two valid statuses
package order
