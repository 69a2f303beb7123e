package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/internal/statemachine"
	"github.com/sjperalta/tuition-api/pkg/keylock"
)

// PaymentInput is a bank payment against one ledger.
type PaymentInput struct {
	StudentNo string
	Term      string
	Amount    decimal.Decimal
}

// PaymentResult is the ledger state after a payment.
type PaymentResult struct {
	Payment    *models.Payment
	Tuition    *models.Tuition
	NewBalance decimal.Decimal
	Reference  string
}

// PaymentService applies bank payments to tuition ledgers.
type PaymentService struct {
	*ledgerAccess
	paymentRepo repository.PaymentRepository
	auditSvc    *AuditService
	now         func() time.Time
}

func NewPaymentService(tx repository.Transactor, studentRepo repository.StudentRepository, tuitionRepo repository.TuitionRepository, paymentRepo repository.PaymentRepository, locks *keylock.Map, auditSvc *AuditService) *PaymentService {
	return &PaymentService{
		ledgerAccess: &ledgerAccess{
			tx:          tx,
			studentRepo: studentRepo,
			tuitionRepo: tuitionRepo,
			locks:       locks,
		},
		paymentRepo: paymentRepo,
		auditSvc:    auditSvc,
		now:         time.Now,
	}
}

// ApplyPayment adds amount to the ledger's paid total, records a Payment and
// recomputes the status, all in one transaction. Overpayment is accepted.
// Calling it twice with the same input pays twice.
func (s *PaymentService) ApplyPayment(ctx context.Context, actor Actor, in PaymentInput) (*PaymentResult, error) {
	studentNo, term, err := requireKey(in.StudentNo, in.Term)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment must be greater than zero", ErrInvalidAmount)
	}
	if err := statemachine.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}

	var result *PaymentResult
	err = s.withLedger(ctx, studentNo, term, func(ctx context.Context, tuition *models.Tuition) error {
		if err := statemachine.NewTuitionFSM(tuition).ApplyPayment(ctx, in.Amount); err != nil {
			return err
		}

		payment := &models.Payment{
			TuitionID: tuition.ID,
			Amount:    in.Amount,
			Reference: uuid.NewString(),
			Status:    models.PaymentStatusSuccessful,
			PaidAt:    s.now().UTC(),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return storageError("record payment", err)
		}
		if err := s.tuitionRepo.Update(ctx, tuition); err != nil {
			return storageError("update tuition", err)
		}

		result = &PaymentResult{
			Payment:    payment,
			Tuition:    tuition,
			NewBalance: tuition.Balance(),
			Reference:  payment.Reference,
		}
		return nil
	})
	if err != nil {
		logFailure("apply payment", err, "student_no", studentNo, "term", term)
		return nil, err
	}

	s.auditSvc.Log(actor, AuditActionPayment, "Payment", ledgerKey(studentNo, term),
		fmt.Sprintf("amount=%s reference=%s status=%s", in.Amount.StringFixed(2), result.Reference, result.Tuition.Status))
	return result, nil
}
