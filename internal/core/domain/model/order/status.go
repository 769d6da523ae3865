package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents one discrete lifecycle stage of an order.
//
// Orders advance through statuses along a fixed directed graph that converges
// on four terminal statuses (Delivered, ReturnToSender, Canceled, Returned).
// Which transitions are legal is decided by the StateMachine, not by the
// Status value itself.
//
// Status is a value object; the zero value StatusUnknown is invalid and helps
// catch uninitialized values coming from persistence or external input.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusWaitingForPayment marks an order created but not yet paid.
	StatusWaitingForPayment

	// StatusNew is the default status after order creation.
	StatusNew

	// StatusProcessing marks an order being prepared.
	StatusProcessing

	// StatusOnHold marks an order paused during preparation,
	// e.g. a product, address, or delivery method issue.
	StatusOnHold

	// StatusCompleted marks an order fully prepared and ready to ship.
	StatusCompleted

	// StatusSent marks an order handed over to the carrier.
	StatusSent

	// StatusOnTheWay marks an order in transport.
	StatusOnTheWay

	// StatusDelivered marks an order delivered to the customer. Terminal.
	StatusDelivered

	// StatusDeliveredPickupPoint marks an order delivered to a pickup point,
	// awaiting customer collection. Only reachable for pickup point delivery.
	StatusDeliveredPickupPoint

	// StatusFailedDelivery marks a delivery attempt that failed.
	StatusFailedDelivery

	// StatusReturnToSender marks an order on its way back to the sender. Terminal.
	StatusReturnToSender

	// StatusCanceled marks a canceled order. Terminal.
	StatusCanceled

	// StatusReturned marks an order returned by the customer. Terminal.
	StatusReturned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:              "UNKNOWN",
		StatusWaitingForPayment:    "WAITING_FOR_PAYMENT",
		StatusNew:                  "NEW",
		StatusProcessing:           "PROCESSING",
		StatusOnHold:               "ON_HOLD",
		StatusCompleted:            "COMPLETED",
		StatusSent:                 "SENT",
		StatusOnTheWay:             "ON_THE_WAY",
		StatusDelivered:            "DELIVERED",
		StatusDeliveredPickupPoint: "DELIVERED_PICKUP_POINT",
		StatusFailedDelivery:       "FAILED_DELIVERY",
		StatusReturnToSender:       "RETURN_TO_SENDER",
		StatusCanceled:             "CANCELED",
		StatusReturned:             "RETURNED",
	}
}

// AllStatuses returns every valid status, in declaration order.
func AllStatuses() []Status {
	return []Status{
		StatusWaitingForPayment,
		StatusNew,
		StatusProcessing,
		StatusOnHold,
		StatusCompleted,
		StatusSent,
		StatusOnTheWay,
		StatusDelivered,
		StatusDeliveredPickupPoint,
		StatusFailedDelivery,
		StatusReturnToSender,
		StatusCanceled,
		StatusReturned,
	}
}

// Validate returns an error if the Status value is not one of the valid statuses.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusReturned {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "WAITING_FOR_PAYMENT".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire name like "ON_THE_WAY" into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status name", s),
	)
}
