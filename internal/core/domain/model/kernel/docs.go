// Package kernel provides the shared value objects of the order relay domain.
//
// The package includes:
//   - UUID: an identifier for in-process handles such as viewer subscriptions
//   - Price: a non-negative monetary amount backed by shopspring/decimal
//
// Both types are immutable and safe for concurrent use.
package kernel
