package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
)

// memDB is an in-memory stand-in for the tuition tables. Reads return
// copies, so a service that does not serialize read-modify-write cycles
// loses updates exactly as it would against a real database.
type memDB struct {
	mu       sync.Mutex
	nextID   uint
	students map[string]models.Student
	tuitions map[uint]models.Tuition
	payments []models.Payment
	audits   []models.AuditLog

	// beforeInsert runs before a tuition insert; it may add rows or fail.
	beforeInsert func(t *models.Tuition) error
	// failPayment makes payment inserts fail.
	failPayment error
}

func newMemDB() *memDB {
	return &memDB{
		students: make(map[string]models.Student),
		tuitions: make(map[uint]models.Tuition),
	}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

type memSnapshot struct {
	nextID   uint
	students map[string]models.Student
	tuitions map[uint]models.Tuition
	payments []models.Payment
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	s := memSnapshot{
		nextID:   db.nextID,
		students: make(map[string]models.Student, len(db.students)),
		tuitions: make(map[uint]models.Tuition, len(db.tuitions)),
		payments: append([]models.Payment(nil), db.payments...),
	}
	for k, v := range db.students {
		s.students[k] = v
	}
	for k, v := range db.tuitions {
		s.tuitions[k] = v
	}
	return s
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextID = s.nextID
	db.students = s.students
	db.tuitions = s.tuitions
	db.payments = s.payments
}

// seed inserts a ledger directly and returns it.
func (db *memDB) seed(studentNo, term string, total, paid int64) models.Tuition {
	db.mu.Lock()
	defer db.mu.Unlock()
	st, ok := db.students[studentNo]
	if !ok {
		st = models.Student{ID: db.id(), StudentNo: studentNo, Name: "Seeded " + studentNo}
		db.students[studentNo] = st
	}
	t := models.Tuition{ID: db.id(), StudentID: st.ID, Term: term, TotalAmount: d(total), PaidAmount: d(paid)}
	t.Status = deriveForSeed(t)
	db.tuitions[t.ID] = t
	return t
}

func (db *memDB) tuition(studentNo, term string) (models.Tuition, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	st, ok := db.students[studentNo]
	if !ok {
		return models.Tuition{}, false
	}
	for _, t := range db.tuitions {
		if t.StudentID == st.ID && t.Term == term {
			return t, true
		}
	}
	return models.Tuition{}, false
}

func (db *memDB) paymentsFor(tuitionID uint) []models.Payment {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.Payment
	for _, p := range db.payments {
		if p.TuitionID == tuitionID {
			out = append(out, p)
		}
	}
	return out
}

// mockTx runs fn directly and restores the memDB when fn fails at the
// outermost level.
type mockTx struct {
	db *memDB
}

type mockTxKey struct{}

func (m *mockTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(mockTxKey{}) != nil {
		return fn(ctx)
	}
	snap := m.db.snapshot()
	if err := fn(context.WithValue(ctx, mockTxKey{}, true)); err != nil {
		m.db.restore(snap)
		return err
	}
	return nil
}

type mockStudentRepo struct {
	repository.StudentRepository
	db *memDB
}

func (m *mockStudentRepo) FindByStudentNo(ctx context.Context, studentNo string) (*models.Student, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	st, ok := m.db.students[studentNo]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &st, nil
}

func (m *mockStudentRepo) FindOrCreate(ctx context.Context, studentNo, name string) (*models.Student, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	st, ok := m.db.students[studentNo]
	if !ok {
		if name == "" {
			name = models.DefaultStudentName
		}
		st = models.Student{ID: m.db.id(), StudentNo: studentNo, Name: name}
		m.db.students[studentNo] = st
	}
	return &st, nil
}

type mockTuitionRepo struct {
	repository.TuitionRepository
	db *memDB
}

func (m *mockTuitionRepo) find(studentID uint, term string) (*models.Tuition, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, t := range m.db.tuitions {
		if t.StudentID == studentID && t.Term == term {
			cp := t
			return &cp, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockTuitionRepo) FindByStudentAndTerm(ctx context.Context, studentID uint, term string) (*models.Tuition, error) {
	return m.find(studentID, term)
}

func (m *mockTuitionRepo) FindForUpdate(ctx context.Context, studentID uint, term string) (*models.Tuition, error) {
	return m.find(studentID, term)
}

func (m *mockTuitionRepo) CreateIfAbsent(ctx context.Context, tuition *models.Tuition) (bool, error) {
	if hook := m.db.beforeInsert; hook != nil {
		if err := hook(tuition); err != nil {
			return false, err
		}
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, t := range m.db.tuitions {
		if t.StudentID == tuition.StudentID && t.Term == tuition.Term {
			return false, nil
		}
	}
	tuition.ID = m.db.id()
	cp := *tuition
	cp.Student = nil
	m.db.tuitions[tuition.ID] = cp
	return true, nil
}

func (m *mockTuitionRepo) Update(ctx context.Context, tuition *models.Tuition) error {
	// Widen the read-modify-write window.
	time.Sleep(time.Microsecond)
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	cp := *tuition
	cp.Student = nil
	m.db.tuitions[tuition.ID] = cp
	return nil
}

func (m *mockTuitionRepo) Delete(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.tuitions, id)
	kept := m.db.payments[:0]
	for _, p := range m.db.payments {
		if p.TuitionID != id {
			kept = append(kept, p)
		}
	}
	m.db.payments = kept
	return nil
}

func (m *mockTuitionRepo) list(match func(models.Tuition) bool, less func(a, b models.Tuition) bool, query *repository.ListQuery) ([]models.Tuition, int64) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var all []models.Tuition
	for _, t := range m.db.tuitions {
		if match(t) {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })

	total := int64(len(all))
	start := query.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + query.PerPage
	if end > len(all) {
		end = len(all)
	}

	page := append([]models.Tuition(nil), all[start:end]...)
	for i := range page {
		for _, st := range m.db.students {
			if st.ID == page[i].StudentID {
				cp := st
				page[i].Student = &cp
			}
		}
	}
	return page, total
}

func (m *mockTuitionRepo) ListByStudent(ctx context.Context, studentID uint, query *repository.ListQuery) ([]models.Tuition, int64, error) {
	page, total := m.list(
		func(t models.Tuition) bool { return t.StudentID == studentID },
		func(a, b models.Tuition) bool { return a.Term < b.Term },
		query,
	)
	return page, total, nil
}

func (m *mockTuitionRepo) ListUnpaid(ctx context.Context, term string, query *repository.ListQuery) ([]models.Tuition, int64, error) {
	page, total := m.list(
		func(t models.Tuition) bool { return t.Term == term && t.Status != models.TuitionStatusPaid },
		func(a, b models.Tuition) bool { return a.StudentID < b.StudentID },
		query,
	)
	return page, total, nil
}

type mockPaymentRepo struct {
	repository.PaymentRepository
	db *memDB
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.failPayment != nil {
		return m.db.failPayment
	}
	payment.ID = m.db.id()
	m.db.payments = append(m.db.payments, *payment)
	return nil
}

type mockAuditRepo struct {
	repository.AuditRepository
	db *memDB
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	entry.ID = m.db.id()
	m.db.audits = append(m.db.audits, *entry)
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return append([]models.AuditLog(nil), m.db.audits...), int64(len(m.db.audits)), nil
}

type mockArchive struct {
	calls int
	err   error
}

func (m *mockArchive) UploadFromBytes(data []byte, filename string, subDir string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return subDir + "/" + filename, nil
}

var errBoom = errors.New("boom")
