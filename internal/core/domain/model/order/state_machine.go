package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition indicates a status change that the lifecycle rules
	// do not allow. Surfaced to callers unchanged, never auto-corrected.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrIntegrityViolation indicates a defect in the lifecycle configuration
	// itself: a status missing from the transition table or a delivery method
	// without canonical paths. Not recoverable by retry; fails loudly at
	// startup or on first use.
	ErrIntegrityViolation = errors.New("order lifecycle configuration is invalid")
)

// InvalidTransitionError reports an illegal status change, carrying the
// statuses involved and the delivery method under which the check ran.
type InvalidTransitionError struct {
	CurrentStatus  Status
	TargetStatus   Status
	DeliveryMethod DeliveryMethod
	message        string
}

func (e *InvalidTransitionError) Error() string {
	return e.message
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CanonicalPath is a named, complete, intended status sequence for one
// delivery method scenario (standard, failed, withHold).
type CanonicalPath struct {
	name     string
	statuses []Status
}

// Name returns the scenario name of the path.
func (p CanonicalPath) Name() string {
	return p.name
}

// Statuses returns a copy of the path's status sequence.
func (p CanonicalPath) Statuses() []Status {
	out := make([]Status, len(p.statuses))
	copy(out, p.statuses)
	return out
}

// StateMachine decides which order status changes are legal, optionally under
// a delivery method, and answers lifecycle queries.
//
// It holds two immutable lookup structures built once at startup:
//
//   - the transition table, mapping each status to its legal next statuses
//     in declared order (empty for terminal statuses)
//   - the canonical path catalog, mapping each delivery method to its named
//     complete lifecycles
//
// Validation is two-phase: first the table lookup, then delivery method
// specific exceptions. Both structures are read-only after construction, so a
// single StateMachine is safe for unlimited concurrent callers.
type StateMachine struct {
	transitions map[Status][]Status
	paths       map[DeliveryMethod][]CanonicalPath
}

// NewStateMachine builds the transition table and canonical path catalog and
// verifies their integrity: every status has exactly one entry, no
// self-transitions, no duplicate targets, and every delivery method owns a
// catalog entry. A failure here is a deployment defect, wrapped in
// ErrIntegrityViolation.
func NewStateMachine() (*StateMachine, error) {
	m := &StateMachine{
		transitions: map[Status][]Status{
			StatusWaitingForPayment:    {StatusNew, StatusCanceled},
			StatusNew:                  {StatusProcessing},
			StatusProcessing:           {StatusCompleted, StatusOnHold},
			StatusOnHold:               {StatusCompleted},
			StatusCompleted:            {StatusSent},
			StatusSent:                 {StatusOnTheWay},
			StatusOnTheWay:             {StatusDelivered, StatusDeliveredPickupPoint, StatusFailedDelivery},
			StatusDeliveredPickupPoint: {StatusDelivered, StatusFailedDelivery},
			StatusDelivered:            {},
			StatusFailedDelivery:       {StatusReturnToSender},
			StatusReturnToSender:       {},
			StatusCanceled:             {},
			StatusReturned:             {},
		},
		paths: map[DeliveryMethod][]CanonicalPath{
			DeliveryMethodHomeDelivery: {
				{name: "standard", statuses: []Status{
					StatusWaitingForPayment, StatusNew, StatusProcessing, StatusCompleted,
					StatusSent, StatusOnTheWay, StatusDelivered,
				}},
				{name: "failed", statuses: []Status{
					StatusWaitingForPayment, StatusNew, StatusProcessing, StatusCompleted,
					StatusSent, StatusOnTheWay, StatusFailedDelivery, StatusReturnToSender,
				}},
				{name: "withHold", statuses: []Status{
					StatusWaitingForPayment, StatusNew, StatusProcessing, StatusOnHold,
					StatusCompleted, StatusSent, StatusOnTheWay,
				}},
			},
			DeliveryMethodPickupPoint: {
				{name: "standard", statuses: []Status{
					StatusWaitingForPayment, StatusNew, StatusProcessing, StatusCompleted,
					StatusSent, StatusOnTheWay, StatusDeliveredPickupPoint, StatusDelivered,
				}},
				{name: "failed", statuses: []Status{
					StatusWaitingForPayment, StatusNew, StatusProcessing, StatusCompleted,
					StatusSent, StatusOnTheWay, StatusDeliveredPickupPoint,
					StatusFailedDelivery, StatusReturnToSender,
				}},
				{name: "withHold", statuses: []Status{
					StatusWaitingForPayment, StatusNew, StatusProcessing, StatusOnHold,
					StatusCompleted, StatusSent, StatusOnTheWay,
				}},
			},
		},
	}

	if err := m.validateConfiguration(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *StateMachine) validateConfiguration() error {
	for _, status := range AllStatuses() {
		nextStatuses, ok := m.transitions[status]
		if !ok {
			return fmt.Errorf("%w: status %s has no transition table entry", ErrIntegrityViolation, status)
		}

		seen := make(map[Status]bool, len(nextStatuses))
		for _, next := range nextStatuses {
			if err := next.Validate(); err != nil {
				return fmt.Errorf("%w: transition target for %s: %w", ErrIntegrityViolation, status, err)
			}
			if next == status {
				return fmt.Errorf("%w: status %s transitions to itself", ErrIntegrityViolation, status)
			}
			if seen[next] {
				return fmt.Errorf("%w: status %s lists %s twice", ErrIntegrityViolation, status, next)
			}
			seen[next] = true
		}
	}

	for _, method := range AllDeliveryMethods() {
		paths, ok := m.paths[method]
		if !ok || len(paths) == 0 {
			return fmt.Errorf("%w: delivery method %s has no canonical paths", ErrIntegrityViolation, method)
		}
		for _, path := range paths {
			for _, status := range path.statuses {
				if err := status.Validate(); err != nil {
					return fmt.Errorf("%w: canonical path %s of %s: %w",
						ErrIntegrityViolation, path.name, method, err)
				}
			}
		}
	}

	return nil
}

// ValidateTransition checks whether moving from current to target is legal.
// When method is DeliveryMethodUnknown only the base transition table applies;
// otherwise delivery method specific exceptions are checked as a second phase.
//
// Returns an InvalidTransitionError describing the violation, or an
// ErrIntegrityViolation wrapper if current is missing from the table.
// No side effects.
func (m *StateMachine) ValidateTransition(current, target Status, method DeliveryMethod) error {
	validNextStatuses, ok := m.transitions[current]
	if !ok {
		return fmt.Errorf("%w: status %s has no transition table entry", ErrIntegrityViolation, current)
	}

	if !containsStatus(validNextStatuses, target) {
		return &InvalidTransitionError{
			CurrentStatus:  current,
			TargetStatus:   target,
			DeliveryMethod: method,
			message: fmt.Sprintf(
				"invalid status transition from '%s' to '%s'. Valid transitions from '%s' are: %s",
				current, target, current, joinStatuses(validNextStatuses),
			),
		}
	}

	if method != DeliveryMethodUnknown {
		return m.validateDeliveryMethodTransition(current, target, method)
	}

	return nil
}

// validateDeliveryMethodTransition applies delivery method specific exceptions.
// StatusDeliveredPickupPoint is only reachable under pickup point delivery,
// regardless of the current status.
func (m *StateMachine) validateDeliveryMethodTransition(current, target Status, method DeliveryMethod) error {
	if target == StatusDeliveredPickupPoint && method != DeliveryMethodPickupPoint {
		return &InvalidTransitionError{
			CurrentStatus:  current,
			TargetStatus:   target,
			DeliveryMethod: method,
			message: fmt.Sprintf(
				"status '%s' is only valid for %s delivery method, but delivery method is '%s'",
				StatusDeliveredPickupPoint, DeliveryMethodPickupPoint, method,
			),
		}
	}

	return nil
}

// IsValidTransition reports whether the transition is legal. Same rules as
// ValidateTransition, never returns an error.
func (m *StateMachine) IsValidTransition(current, target Status, method DeliveryMethod) bool {
	return m.ValidateTransition(current, target, method) == nil
}

// ValidateStatusHistory checks every adjacent pair of an observed status
// history in order, failing fast on the first broken pair. Histories of
// length 0 or 1 are vacuously valid.
func (m *StateMachine) ValidateStatusHistory(history []Status, method DeliveryMethod) error {
	for i := 1; i < len(history); i++ {
		if err := m.ValidateTransition(history[i-1], history[i], method); err != nil {
			return err
		}
	}
	return nil
}

// GetValidNextStatuses returns the legal next statuses for current, in the
// transition table's declared order. When a delivery method is given, targets
// that violate its exceptions are filtered out.
func (m *StateMachine) GetValidNextStatuses(current Status, method DeliveryMethod) ([]Status, error) {
	validNextStatuses, ok := m.transitions[current]
	if !ok {
		return nil, fmt.Errorf("%w: status %s has no transition table entry", ErrIntegrityViolation, current)
	}

	result := make([]Status, 0, len(validNextStatuses))
	for _, next := range validNextStatuses {
		if method != DeliveryMethodUnknown {
			if err := m.validateDeliveryMethodTransition(current, next, method); err != nil {
				continue
			}
		}
		result = append(result, next)
	}

	return result, nil
}

// IsFinalStatus reports whether the status has no outgoing transitions.
func (m *StateMachine) IsFinalStatus(status Status) bool {
	validNextStatuses, ok := m.transitions[status]
	return ok && len(validNextStatuses) == 0
}

// GetCompletePaths returns the named canonical paths of a delivery method,
// in catalog order. A method without catalog entry is a configuration defect.
func (m *StateMachine) GetCompletePaths(method DeliveryMethod) ([]CanonicalPath, error) {
	paths, ok := m.paths[method]
	if !ok {
		return nil, fmt.Errorf("%w: delivery method %s has no canonical paths", ErrIntegrityViolation, method)
	}

	result := make([]CanonicalPath, len(paths))
	copy(result, paths)
	return result, nil
}

// IsValidCompletePath reports whether path is internally consistent (per
// ValidateStatusHistory) and is a prefix of at least one canonical path of
// the delivery method. The scan returns on the first matching canonical path
// in catalog order.
func (m *StateMachine) IsValidCompletePath(path []Status, method DeliveryMethod) bool {
	if err := m.ValidateStatusHistory(path, method); err != nil {
		return false
	}

	paths, err := m.GetCompletePaths(method)
	if err != nil {
		return false
	}

	for _, canonical := range paths {
		if isPathPrefixOf(path, canonical.statuses) {
			return true
		}
	}

	return false
}

// isPathPrefixOf reports whether subPath matches fullPath element-wise over
// the whole length of subPath.
func isPathPrefixOf(subPath, fullPath []Status) bool {
	if len(subPath) > len(fullPath) {
		return false
	}

	for i := range subPath {
		if subPath[i] != fullPath[i] {
			return false
		}
	}

	return true
}

func containsStatus(statuses []Status, target Status) bool {
	for _, s := range statuses {
		if s == target {
			return true
		}
	}
	return false
}

func joinStatuses(statuses []Status) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
