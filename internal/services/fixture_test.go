package services

import (
	"github.com/shopspring/decimal"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/statemachine"
	"github.com/sjperalta/tuition-api/pkg/keylock"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func deriveForSeed(t models.Tuition) string {
	return statemachine.DeriveStatus(t.TotalAmount, t.PaidAmount)
}

type fixture struct {
	db      *memDB
	tuition *TuitionService
	payment *PaymentService
	audit   *AuditService
	archive *mockArchive
	imports *ImportService
}

func newFixture() *fixture {
	db := newMemDB()
	tx := &mockTx{db: db}
	students := &mockStudentRepo{db: db}
	tuitions := &mockTuitionRepo{db: db}
	locks := keylock.New()
	audit := NewAuditService(&mockAuditRepo{db: db}, nil)
	archive := &mockArchive{}

	tuitionSvc := NewTuitionService(tx, students, tuitions, locks, audit)
	return &fixture{
		db:      db,
		tuition: tuitionSvc,
		payment: NewPaymentService(tx, students, tuitions, &mockPaymentRepo{db: db}, locks, audit),
		audit:   audit,
		archive: archive,
		imports: NewImportService(tx, tuitionSvc, archive, audit),
	}
}

var admin = Actor{Username: "admin", IP: "127.0.0.1"}
