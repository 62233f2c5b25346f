// Package commands contains the operations that change order state.
// Every command follows the same pattern: a constructor that normalizes and validates
// input, and a handler that commits through ports.OrderRepository and only then
// publishes the committed order through ports.OrderEventPublisher.
package commands
