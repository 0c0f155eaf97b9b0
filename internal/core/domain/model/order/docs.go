// Package order models the service order ("OS") of the nautical workshop.
//
// ServiceOrder is the aggregate root. It owns its items, checklist, time logs
// and notes, and enforces the lifecycle state machine described on Status.
// Once an order is COMPLETED or CANCELED it is locked: every mutation returns
// errs.OrderLockedError until a COMPLETED order is explicitly reopened.
//
// Lifecycle transitions are recorded as Events which the persistence layer
// writes to an outbox in the same transaction as the order itself.
package order
