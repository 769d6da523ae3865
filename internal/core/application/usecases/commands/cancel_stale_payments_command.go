package commands

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCancelStalePaymentsCommandIsNotConstructed = errors.New(
	"CancelStalePaymentsCommand must be created via NewCancelStalePaymentsCommand constructor",
)

// CancelStalePaymentsCommand represents a request to cancel every order that
// has been waiting for payment longer than the given age.
type CancelStalePaymentsCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStalePaymentsCommand creates a command to cancel stale unpaid
// orders. The maximum age must be positive.
func NewCancelStalePaymentsCommand(maxAge time.Duration) (CancelStalePaymentsCommand, error) {
	if maxAge <= 0 {
		return CancelStalePaymentsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"maxAge",
			fmt.Errorf("%s is not greater than 0", maxAge),
		)
	}

	return CancelStalePaymentsCommand{
		maxAge: maxAge,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelStalePaymentsCommandIsNotConstructed if validation fails.
func (c CancelStalePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrCancelStalePaymentsCommandIsNotConstructed)
}

// MaxAge returns how long an order may wait for payment before cancellation.
func (c CancelStalePaymentsCommand) MaxAge() time.Duration {
	return c.maxAge
}
