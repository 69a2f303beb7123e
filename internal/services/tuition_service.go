package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/internal/statemachine"
	"github.com/sjperalta/tuition-api/pkg/keylock"
	"github.com/sjperalta/tuition-api/pkg/logger"
)

// DuplicatePolicy decides what ensuring an existing ledger does.
type DuplicatePolicy int

const (
	// DuplicateReject fails with ErrDuplicateLedger.
	DuplicateReject DuplicatePolicy = iota
	// DuplicateSkip returns the existing ledger untouched.
	DuplicateSkip
)

// TuitionInput identifies a ledger and its initial total.
type TuitionInput struct {
	StudentNo   string
	StudentName string
	Term        string
	Amount      decimal.Decimal
}

// StudentTuitions is one page of a student's ledgers.
type StudentTuitions struct {
	Student  *models.Student
	Tuitions []models.Tuition
	Total    int64
	Query    *repository.ListQuery
}

// TuitionService manages tuition ledgers for administrators and queries.
type TuitionService struct {
	*ledgerAccess
	auditSvc *AuditService
}

func NewTuitionService(tx repository.Transactor, studentRepo repository.StudentRepository, tuitionRepo repository.TuitionRepository, locks *keylock.Map, auditSvc *AuditService) *TuitionService {
	return &TuitionService{
		ledgerAccess: &ledgerAccess{
			tx:          tx,
			studentRepo: studentRepo,
			tuitionRepo: tuitionRepo,
			locks:       locks,
		},
		auditSvc: auditSvc,
	}
}

// Create adds a ledger for a student and term, creating the student when
// absent. An existing ledger yields ErrDuplicateLedger.
func (s *TuitionService) Create(ctx context.Context, actor Actor, in TuitionInput) (*models.Tuition, error) {
	tuition, _, err := s.ensure(ctx, in, DuplicateReject)
	if err != nil {
		logFailure("create tuition", err, "student_no", in.StudentNo, "term", in.Term)
		return nil, err
	}

	s.auditSvc.Log(actor, AuditActionCreate, "Tuition", ledgerKey(in.StudentNo, in.Term),
		fmt.Sprintf("total=%s", tuition.TotalAmount.StringFixed(2)))
	return tuition, nil
}

// ensure returns the ledger for in, creating it when absent. When one
// already exists, including one inserted concurrently, policy decides.
func (s *TuitionService) ensure(ctx context.Context, in TuitionInput, policy DuplicatePolicy) (*models.Tuition, bool, error) {
	studentNo, term, err := requireKey(in.StudentNo, in.Term)
	if err != nil {
		return nil, false, err
	}
	if in.Amount.IsNegative() {
		return nil, false, fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	if err := statemachine.ValidateAmount(in.Amount); err != nil {
		return nil, false, err
	}

	var (
		tuition *models.Tuition
		created bool
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		student, err := s.studentRepo.FindOrCreate(ctx, studentNo, strings.TrimSpace(in.StudentName))
		if err != nil {
			return storageError("find or create student", err)
		}

		fresh, err := statemachine.NewTuition(student.ID, term, in.Amount)
		if err != nil {
			return err
		}

		inserted, err := s.tuitionRepo.CreateIfAbsent(ctx, fresh)
		if err != nil {
			return storageError("create tuition", err)
		}
		if inserted {
			fresh.Student = student
			tuition, created = fresh, true
			return nil
		}

		if policy == DuplicateReject {
			return ErrDuplicateLedger
		}

		existing, err := s.tuitionRepo.FindByStudentAndTerm(ctx, student.ID, term)
		if err != nil {
			return storageError("load existing tuition", err)
		}
		existing.Student = student
		tuition = existing
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return tuition, created, nil
}

// SetTotal replaces a ledger's total and recomputes its status. A nil amount
// only recomputes the status.
func (s *TuitionService) SetTotal(ctx context.Context, actor Actor, studentNo, term string, amount *decimal.Decimal) (*models.Tuition, error) {
	studentNo, term, err := requireKey(studentNo, term)
	if err != nil {
		return nil, err
	}

	if amount != nil {
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
		}
		if err := statemachine.ValidateAmount(*amount); err != nil {
			return nil, err
		}
	}

	var updated *models.Tuition
	err = s.withLedger(ctx, studentNo, term, func(ctx context.Context, tuition *models.Tuition) error {
		total := tuition.TotalAmount
		if amount != nil {
			total = *amount
		}
		if err := statemachine.NewTuitionFSM(tuition).SetTotal(ctx, total); err != nil {
			return err
		}
		if err := s.tuitionRepo.Update(ctx, tuition); err != nil {
			return storageError("update tuition", err)
		}
		updated = tuition
		return nil
	})
	if err != nil {
		logFailure("set tuition total", err, "student_no", studentNo, "term", term)
		return nil, err
	}

	s.auditSvc.Log(actor, AuditActionUpdate, "Tuition", ledgerKey(studentNo, term),
		fmt.Sprintf("total=%s status=%s", updated.TotalAmount.StringFixed(2), updated.Status))
	return updated, nil
}

// Delete removes a ledger and its payments.
func (s *TuitionService) Delete(ctx context.Context, actor Actor, studentNo, term string) error {
	studentNo, term, err := requireKey(studentNo, term)
	if err != nil {
		return err
	}

	err = s.withLedger(ctx, studentNo, term, func(ctx context.Context, tuition *models.Tuition) error {
		if err := s.tuitionRepo.Delete(ctx, tuition.ID); err != nil {
			return storageError("delete tuition", err)
		}
		return nil
	})
	if err != nil {
		logFailure("delete tuition", err, "student_no", studentNo, "term", term)
		return err
	}

	s.auditSvc.Log(actor, AuditActionDelete, "Tuition", ledgerKey(studentNo, term), "")
	return nil
}

// ListByStudent returns one page of a student's ledgers ordered by term.
func (s *TuitionService) ListByStudent(ctx context.Context, studentNo string, query *repository.ListQuery) (*StudentTuitions, error) {
	studentNo = strings.TrimSpace(studentNo)
	if studentNo == "" {
		return nil, validationError("student_no", "student_no is required")
	}
	query = query.Normalize()

	student, err := s.findStudent(ctx, studentNo)
	if err != nil {
		return nil, err
	}

	tuitions, total, err := s.tuitionRepo.ListByStudent(ctx, student.ID, query)
	if err != nil {
		return nil, storageError("list tuitions", err)
	}

	return &StudentTuitions{Student: student, Tuitions: tuitions, Total: total, Query: query}, nil
}

// ListUnpaid returns one page of ledgers for term whose status is not Paid.
func (s *TuitionService) ListUnpaid(ctx context.Context, term string, query *repository.ListQuery) ([]models.Tuition, int64, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, 0, validationError("term", "term is required")
	}

	tuitions, total, err := s.tuitionRepo.ListUnpaid(ctx, term, query.Normalize())
	if err != nil {
		return nil, 0, storageError("list unpaid", err)
	}
	return tuitions, total, nil
}

// AllUnpaid walks every page of ListUnpaid.
func (s *TuitionService) AllUnpaid(ctx context.Context, term string) ([]models.Tuition, error) {
	query := &repository.ListQuery{Page: 1, PerPage: repository.MaxPageSize}
	var all []models.Tuition
	for {
		page, total, err := s.ListUnpaid(ctx, term, query)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || int64(len(all)) >= total {
			return all, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		query.Page++
	}
}

// logFailure records unexpected errors; client errors stay quiet.
func logFailure(op string, err error, args ...any) {
	if errors.Is(err, ErrStorage) {
		logger.Error(op+" failed", append(args, "error", err)...)
	}
}
