// Package order provides the order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root holding delivery method, line items, the
//     current status, and the observed status history
//   - Status / DeliveryMethod: enum value objects with wire-name conversion
//   - StateMachine: the transition table and canonical path catalog that
//     decide which status changes are legal
//
// Key business rules:
//   - Status changes follow a fixed directed graph converging on four
//     terminal statuses (DELIVERED, RETURN_TO_SENDER, CANCELED, RETURNED)
//   - DELIVERED_PICKUP_POINT is only reachable under PICKUP_POINT delivery
//   - Each delivery method owns named canonical lifecycles (standard, failed,
//     withHold); a partial history is valid if it prefixes one of them
//
// The transition table and path catalog are immutable after construction, so
// one StateMachine instance serves unlimited concurrent readers.
package order
