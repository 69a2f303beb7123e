package handlers

import (
	"context"
	"sync"

	"github.com/sjperalta/tuition-api/internal/admission"
	"github.com/sjperalta/tuition-api/internal/config"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/internal/services"
	"github.com/sjperalta/tuition-api/pkg/keylock"
)

// fakeLedger is an in-memory stand-in for the student, tuition and payment
// tables.
type fakeLedger struct {
	mu       sync.Mutex
	nextID   uint
	students map[string]*models.Student
	tuitions []*models.Tuition
	payments []models.Payment
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{students: map[string]*models.Student{}}
}

func (f *fakeLedger) id() uint {
	f.nextID++
	return f.nextID
}

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStudentRepo struct {
	repository.StudentRepository
	f *fakeLedger
}

func (r *fakeStudentRepo) FindByStudentNo(ctx context.Context, studentNo string) (*models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	st, ok := r.f.students[studentNo]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStudentRepo) FindOrCreate(ctx context.Context, studentNo, name string) (*models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	st, ok := r.f.students[studentNo]
	if !ok {
		if name == "" {
			name = models.DefaultStudentName
		}
		st = &models.Student{ID: r.f.id(), StudentNo: studentNo, Name: name}
		r.f.students[studentNo] = st
	}
	cp := *st
	return &cp, nil
}

type fakeTuitionRepo struct {
	repository.TuitionRepository
	f *fakeLedger
}

func (r *fakeTuitionRepo) find(studentID uint, term string) *models.Tuition {
	for _, t := range r.f.tuitions {
		if t.StudentID == studentID && t.Term == term {
			return t
		}
	}
	return nil
}

func (r *fakeTuitionRepo) FindByStudentAndTerm(ctx context.Context, studentID uint, term string) (*models.Tuition, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	t := r.find(studentID, term)
	if t == nil {
		return nil, repository.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTuitionRepo) FindForUpdate(ctx context.Context, studentID uint, term string) (*models.Tuition, error) {
	return r.FindByStudentAndTerm(ctx, studentID, term)
}

func (r *fakeTuitionRepo) CreateIfAbsent(ctx context.Context, tuition *models.Tuition) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.find(tuition.StudentID, tuition.Term) != nil {
		return false, nil
	}
	tuition.ID = r.f.id()
	cp := *tuition
	cp.Student = nil
	r.f.tuitions = append(r.f.tuitions, &cp)
	return true, nil
}

func (r *fakeTuitionRepo) Update(ctx context.Context, tuition *models.Tuition) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	t := r.find(tuition.StudentID, tuition.Term)
	if t == nil {
		return repository.ErrRecordNotFound
	}
	t.TotalAmount, t.PaidAmount, t.Status = tuition.TotalAmount, tuition.PaidAmount, tuition.Status
	return nil
}

func (r *fakeTuitionRepo) Delete(ctx context.Context, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	kept := r.f.payments[:0]
	for _, p := range r.f.payments {
		if p.TuitionID != id {
			kept = append(kept, p)
		}
	}
	r.f.payments = kept
	for i, t := range r.f.tuitions {
		if t.ID == id {
			r.f.tuitions = append(r.f.tuitions[:i], r.f.tuitions[i+1:]...)
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

func (r *fakeTuitionRepo) ListByStudent(ctx context.Context, studentID uint, query *repository.ListQuery) ([]models.Tuition, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var all []models.Tuition
	for _, t := range r.f.tuitions {
		if t.StudentID == studentID {
			all = append(all, *t)
		}
	}
	return page(all, query), int64(len(all)), nil
}

func (r *fakeTuitionRepo) ListUnpaid(ctx context.Context, term string, query *repository.ListQuery) ([]models.Tuition, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var all []models.Tuition
	for _, t := range r.f.tuitions {
		if t.Term == term && t.Status != models.TuitionStatusPaid {
			cp := *t
			for _, st := range r.f.students {
				if st.ID == t.StudentID {
					stCopy := *st
					cp.Student = &stCopy
				}
			}
			all = append(all, cp)
		}
	}
	return page(all, query), int64(len(all)), nil
}

func page(all []models.Tuition, query *repository.ListQuery) []models.Tuition {
	start := query.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + query.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

type fakePaymentRepo struct {
	repository.PaymentRepository
	f *fakeLedger
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	payment.ID = r.f.id()
	r.f.payments = append(r.f.payments, *payment)
	return nil
}

// newTestServices wires real services over the fake ledger. Audit logging is
// disabled, batch files are not archived, no user can log in and the
// admission store lives in memory.
func newTestServices(admissionClock admission.Clock) (*services.Services, *fakeLedger) {
	f := newFakeLedger()
	students := &fakeStudentRepo{f: f}
	tuitions := &fakeTuitionRepo{f: f}
	locks := keylock.New()

	tuitionSvc := services.NewTuitionService(fakeTx{}, students, tuitions, locks, nil)
	admissionSvc := services.NewAdmissionService(
		admission.NewPolicy(admission.NewMemoryStore(), admission.DefaultDailyQuota),
		admission.NewMemoryStatsStore(),
		nil,
	).WithClock(admissionClock)

	return &services.Services{
		Auth:      services.NewAuthService(&mockUserRepo{}, &config.Config{JWTSecret: testJWTSecret, JWTExpirationHours: 1}),
		Tuition:   tuitionSvc,
		Import:    services.NewImportService(fakeTx{}, tuitionSvc, nil, nil),
		Payment:   services.NewPaymentService(fakeTx{}, students, tuitions, &fakePaymentRepo{f: f}, locks, nil),
		Export:    services.NewExportService(tuitionSvc),
		Admission: admissionSvc,
	}, f
}
