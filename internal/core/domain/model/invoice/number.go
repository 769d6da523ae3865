package invoice

import (
	"strconv"
	"strings"
	"time"

	"orderflow/internal/pkg/errs"
)

// NumberOptions controls how a sequence number is rendered into the
// human-readable invoice number.
type NumberOptions struct {
	// Prefix is the leading token, separated from the rest by a single space.
	Prefix string

	// Separator joins the sequence, optional month, and year tokens.
	Separator string

	// UseCurrentMonth includes the issue-time numeric month between the
	// sequence and the year.
	UseCurrentMonth bool
}

// DefaultNumberOptions returns the options used when a caller does not
// provide any: "INV 12/3/2025" style.
func DefaultNumberOptions() NumberOptions {
	return NumberOptions{
		Prefix:          "INV",
		Separator:       "/",
		UseCurrentMonth: true,
	}
}

// Validate checks that the options can produce a well-formed number.
func (o NumberOptions) Validate() error {
	if o.Prefix == "" {
		return errs.NewValueIsRequiredError("prefix")
	}
	if o.Separator == "" {
		return errs.NewValueIsRequiredError("separator")
	}
	return nil
}

// FormatNumber renders a sequence number as an invoice number at the given
// issue time. The token order is fixed: sequence, optional month, year. The
// month is the unpadded numeric month, the year is 4 digits. Only display
// formatting depends on the time; the sequence itself never resets at month
// or year boundaries.
//
// FormatNumber(5, {Prefix: "INV", Separator: "/"}, march2025) -> "INV 5/2025"
// and with UseCurrentMonth -> "INV 5/3/2025".
func FormatNumber(sequence int64, options NumberOptions, at time.Time) string {
	parts := []string{strconv.FormatInt(sequence, 10)}
	if options.UseCurrentMonth {
		parts = append(parts, strconv.Itoa(int(at.Month())))
	}
	parts = append(parts, strconv.Itoa(at.Year()))

	return options.Prefix + " " + strings.Join(parts, options.Separator)
}
