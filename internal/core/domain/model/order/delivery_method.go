package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// DeliveryMethod is the fulfillment channel chosen for an order.
// It constrains which statuses are reachable: StatusDeliveredPickupPoint is
// only legal for pickup point delivery.
//
// The zero value DeliveryMethodUnknown doubles as "not specified" in the
// StateMachine API: transition checks skip method-specific rules when the
// method is unknown.
type DeliveryMethod int

const (
	// DeliveryMethodUnknown represents an unspecified delivery method.
	DeliveryMethodUnknown DeliveryMethod = iota

	// DeliveryMethodHomeDelivery ships the order to the customer's address.
	DeliveryMethodHomeDelivery

	// DeliveryMethodPickupPoint ships the order to a pickup point for collection.
	DeliveryMethodPickupPoint
)

func getDeliveryMethodStrings() map[DeliveryMethod]string {
	return map[DeliveryMethod]string{
		DeliveryMethodUnknown:      "UNKNOWN",
		DeliveryMethodHomeDelivery: "HOME_DELIVERY",
		DeliveryMethodPickupPoint:  "PICKUP_POINT",
	}
}

// AllDeliveryMethods returns every valid delivery method, in declaration order.
func AllDeliveryMethods() []DeliveryMethod {
	return []DeliveryMethod{DeliveryMethodHomeDelivery, DeliveryMethodPickupPoint}
}

// Validate returns an error if the value is not a valid delivery method.
func (m DeliveryMethod) Validate() error {
	if m != DeliveryMethodHomeDelivery && m != DeliveryMethodPickupPoint {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery method",
			fmt.Errorf("%d is not a valid delivery method", m),
		)
	}
	return nil
}

// String returns the wire name of the delivery method, e.g. "HOME_DELIVERY".
func (m DeliveryMethod) String() string {
	if str, ok := getDeliveryMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// DeliveryMethodFromString parses a wire name like "PICKUP_POINT" into a DeliveryMethod.
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	for method, str := range getDeliveryMethodStrings() {
		if str == s && method != DeliveryMethodUnknown {
			return method, nil
		}
	}
	return DeliveryMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery method",
		fmt.Errorf("%q is not a valid delivery method name", s),
	)
}
