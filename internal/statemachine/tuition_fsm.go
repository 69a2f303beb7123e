package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/pkg/logger"
)

// ErrInvalidAmount is returned for non-positive payments, negative totals and
// amounts the ledger columns cannot hold exactly.
var ErrInvalidAmount = errors.New("invalid amount")

// AmountScale is the number of decimal places stored for ledger amounts.
const AmountScale = 2

// MaxAmount is the smallest magnitude that overflows a decimal(12,2) column.
var MaxAmount = decimal.New(1, 10)

// ValidateAmount rejects amounts with sub-cent digits or too many integer
// digits. Sign is left to the caller.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", ErrInvalidAmount, AmountScale)
	}
	if amount.Abs().GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("%w: amount must be less than %s", ErrInvalidAmount, MaxAmount.String())
	}
	return nil
}

// Ledger events. Payment events can only move a tuition forward;
// reassessment events follow an administrator changing the total.
const (
	EventPayPartial      = "pay_partial"
	EventPayInFull       = "pay_in_full"
	EventReassessUnpaid  = "reassess_unpaid"
	EventReassessPartial = "reassess_partial"
	EventReassessPaid    = "reassess_paid"
)

var allStatuses = []string{models.TuitionStatusUnpaid, models.TuitionStatusPartial, models.TuitionStatusPaid}

// DeriveStatus computes the status for a total and a paid amount.
// paid >= total wins, so a zero-total tuition is Paid.
func DeriveStatus(total, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return models.TuitionStatusPaid
	case paid.IsPositive():
		return models.TuitionStatusPartial
	default:
		return models.TuitionStatusUnpaid
	}
}

// NewTuition builds an unsaved tuition with nothing paid and a derived status.
func NewTuition(studentID uint, term string, total decimal.Decimal) (*models.Tuition, error) {
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: total must not be negative", ErrInvalidAmount)
	}
	if err := ValidateAmount(total); err != nil {
		return nil, err
	}
	return &models.Tuition{
		StudentID:   studentID,
		Term:        term,
		TotalAmount: total,
		PaidAmount:  decimal.Zero,
		Status:      DeriveStatus(total, decimal.Zero),
	}, nil
}

// TuitionFSM wraps a tuition with its state machine
type TuitionFSM struct {
	tuition *models.Tuition
	fsm     *fsm.FSM
}

// NewTuitionFSM creates a state machine positioned at the status the
// tuition's amounts imply, ignoring whatever is stored in Status.
func NewTuitionFSM(tuition *models.Tuition) *TuitionFSM {
	tf := &TuitionFSM{tuition: tuition}

	tf.fsm = fsm.NewFSM(
		DeriveStatus(tuition.TotalAmount, tuition.PaidAmount),
		fsm.Events{
			// unpaid/partial → partial
			{Name: EventPayPartial, Src: []string{models.TuitionStatusUnpaid, models.TuitionStatusPartial}, Dst: models.TuitionStatusPartial},

			// any → paid
			{Name: EventPayInFull, Src: allStatuses, Dst: models.TuitionStatusPaid},

			{Name: EventReassessUnpaid, Src: allStatuses, Dst: models.TuitionStatusUnpaid},
			{Name: EventReassessPartial, Src: allStatuses, Dst: models.TuitionStatusPartial},
			{Name: EventReassessPaid, Src: allStatuses, Dst: models.TuitionStatusPaid},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("Tuition status changed",
					"tuition_id", tuition.ID, "term", tuition.Term, "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)

	return tf
}

// ApplyPayment adds amount to the paid total and moves the status forward.
// The tuition is left untouched when an error is returned.
func (t *TuitionFSM) ApplyPayment(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: payment must be greater than zero", ErrInvalidAmount)
	}
	if err := ValidateAmount(amount); err != nil {
		return err
	}

	paid := t.tuition.PaidAmount.Add(amount)
	if paid.GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("%w: paid total must be less than %s", ErrInvalidAmount, MaxAmount.String())
	}
	event := EventPayPartial
	if DeriveStatus(t.tuition.TotalAmount, paid) == models.TuitionStatusPaid {
		event = EventPayInFull
	}

	if err := t.fire(ctx, event); err != nil {
		return fmt.Errorf("failed to apply payment: %w", err)
	}

	t.tuition.PaidAmount = paid
	t.tuition.Status = t.fsm.Current()
	return nil
}

// SetTotal replaces the total and recomputes the status in whichever
// direction the new total implies.
func (t *TuitionFSM) SetTotal(ctx context.Context, total decimal.Decimal) error {
	if total.IsNegative() {
		return fmt.Errorf("%w: total must not be negative", ErrInvalidAmount)
	}
	if err := ValidateAmount(total); err != nil {
		return err
	}

	var event string
	switch DeriveStatus(total, t.tuition.PaidAmount) {
	case models.TuitionStatusPaid:
		event = EventReassessPaid
	case models.TuitionStatusPartial:
		event = EventReassessPartial
	default:
		event = EventReassessUnpaid
	}

	if err := t.fire(ctx, event); err != nil {
		return fmt.Errorf("failed to set total: %w", err)
	}

	t.tuition.TotalAmount = total
	t.tuition.Status = t.fsm.Current()
	return nil
}

// fire runs an event; staying in the same state is not an error.
func (t *TuitionFSM) fire(ctx context.Context, event string) error {
	err := t.fsm.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if err == nil || errors.As(err, &noTransition) {
		return nil
	}
	return err
}

// Current returns the current state
func (t *TuitionFSM) Current() string {
	return t.fsm.Current()
}

// Can checks if a transition is possible
func (t *TuitionFSM) Can(event string) bool {
	return t.fsm.Can(event)
}
