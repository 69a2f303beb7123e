package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/pkg/keylock"
)

// ledgerAccess serializes mutations of one tuition ledger. Within the process
// a striped lock on (student_no, term) orders callers; across processes the
// row lock taken by FindForUpdate does.
type ledgerAccess struct {
	tx          repository.Transactor
	studentRepo repository.StudentRepository
	tuitionRepo repository.TuitionRepository
	locks       *keylock.Map
}

func ledgerKey(studentNo, term string) string {
	return studentNo + "/" + term
}

// withLedger runs fn inside a transaction holding the ledger's locks. The
// tuition passed to fn has its Student populated.
func (a *ledgerAccess) withLedger(ctx context.Context, studentNo, term string, fn func(ctx context.Context, tuition *models.Tuition) error) error {
	unlock := a.locks.Lock(ledgerKey(studentNo, term))
	defer unlock()

	return a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		student, err := a.findStudent(ctx, studentNo)
		if err != nil {
			return err
		}

		tuition, err := a.tuitionRepo.FindForUpdate(ctx, student.ID, term)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrTuitionNotFound
			}
			return storageError("lock tuition", err)
		}
		tuition.Student = student

		return fn(ctx, tuition)
	})
}

func (a *ledgerAccess) findStudent(ctx context.Context, studentNo string) (*models.Student, error) {
	student, err := a.studentRepo.FindByStudentNo(ctx, studentNo)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, storageError("find student", err)
	}
	return student, nil
}

func requireKey(studentNo, term string) (string, string, error) {
	studentNo = strings.TrimSpace(studentNo)
	term = strings.TrimSpace(term)
	if studentNo == "" {
		return "", "", validationError("student_no", "student_no is required")
	}
	if term == "" {
		return "", "", validationError("term", "term is required")
	}
	return studentNo, term, nil
}
