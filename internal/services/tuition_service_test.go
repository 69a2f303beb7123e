package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuitionService_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tuition, err := f.tuition.Create(ctx, admin, TuitionInput{StudentNo: "S1", Term: "2024-1", Amount: d(1000)})
	require.NoError(t, err)

	assert.Equal(t, models.TuitionStatusUnpaid, tuition.Status)
	assert.True(t, tuition.PaidAmount.IsZero())
	require.NotNil(t, tuition.Student)
	assert.Equal(t, models.DefaultStudentName, tuition.Student.Name)

	_, err = f.tuition.Create(ctx, admin, TuitionInput{StudentNo: "S1", Term: "2024-1", Amount: d(5)})
	assert.ErrorIs(t, err, ErrDuplicateLedger)

	stored, ok := f.db.tuition("S1", "2024-1")
	require.True(t, ok)
	assert.True(t, stored.TotalAmount.Equal(d(1000)))

	assert.Len(t, f.db.audits, 1)
	assert.Equal(t, AuditActionCreate, f.db.audits[0].Action)
	assert.Equal(t, "admin", f.db.audits[0].Actor)
}

func TestTuitionService_EnsureSkipKeepsExistingTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.db.seed("S1", "2024-1", 1000, 200)

	tuition, created, err := f.tuition.ensure(ctx, TuitionInput{StudentNo: "S1", Term: "2024-1", Amount: d(9999)}, DuplicateSkip)
	require.NoError(t, err)

	assert.False(t, created)
	assert.True(t, tuition.TotalAmount.Equal(d(1000)))
	assert.True(t, tuition.PaidAmount.Equal(d(200)))
}

func TestTuitionService_EnsureHandlesConcurrentInsert(t *testing.T) {
	for _, tt := range []struct {
		name    string
		policy  DuplicatePolicy
		wantErr error
	}{
		{"reject", DuplicateReject, ErrDuplicateLedger},
		{"skip", DuplicateSkip, nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			// Another writer inserts the same ledger between our check and insert.
			f.db.beforeInsert = func(tuition *models.Tuition) error {
				f.db.beforeInsert = nil
				f.db.seed("S1", tuition.Term, 700, 0)
				return nil
			}

			tuition, created, err := f.tuition.ensure(context.Background(), TuitionInput{StudentNo: "S1", Term: "2024-1", Amount: d(1000)}, tt.policy)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.False(t, created)
			assert.True(t, tuition.TotalAmount.Equal(d(700)))
		})
	}
}

func TestTuitionService_CreateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.tuition.Create(ctx, admin, TuitionInput{StudentNo: "S1", Term: " ", Amount: d(10)})
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "term is required")

	_, err = f.tuition.Create(ctx, admin, TuitionInput{StudentNo: "", Term: "2024-1", Amount: d(10)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.tuition.Create(ctx, admin, TuitionInput{StudentNo: "S1", Term: "2024-1", Amount: d(-1)})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, ok := f.db.tuition("S1", "2024-1")
	assert.False(t, ok)
}

func TestTuitionService_SetTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.db.seed("S1", "2024-1", 1000, 1000)

	newTotal := d(500)
	tuition, err := f.tuition.SetTotal(ctx, admin, "S1", "2024-1", &newTotal)
	require.NoError(t, err)
	assert.Equal(t, models.TuitionStatusPaid, tuition.Status)

	newTotal = d(1500)
	tuition, err = f.tuition.SetTotal(ctx, admin, "S1", "2024-1", &newTotal)
	require.NoError(t, err)
	assert.Equal(t, models.TuitionStatusPartial, tuition.Status)

	stored, _ := f.db.tuition("S1", "2024-1")
	assert.True(t, stored.TotalAmount.Equal(d(1500)))
	assert.Equal(t, models.TuitionStatusPartial, stored.Status)

	negative := d(-1)
	_, err = f.tuition.SetTotal(ctx, admin, "S1", "2024-1", &negative)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTuitionService_RejectsAmountsTheLedgerCannotStore(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	oversized := decimal.RequireFromString("10000000000")
	_, err := f.tuition.Create(ctx, admin, TuitionInput{StudentNo: "S1", Term: "2024-1", Amount: oversized})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = f.tuition.Create(ctx, admin, TuitionInput{StudentNo: "S1", Term: "2024-1", Amount: decimal.RequireFromString("100.001")})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, ok := f.db.tuition("S1", "2024-1")
	assert.False(t, ok)

	f.db.seed("S2", "2024-1", 1000, 0)
	subCent := decimal.RequireFromString("999.995")
	_, err = f.tuition.SetTotal(ctx, admin, "S2", "2024-1", &subCent)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = f.tuition.SetTotal(ctx, admin, "S2", "2024-1", &oversized)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	stored, _ := f.db.tuition("S2", "2024-1")
	assert.True(t, stored.TotalAmount.Equal(d(1000)))
}

func TestTuitionService_SetTotalWithoutAmountRecomputesStatus(t *testing.T) {
	f := newFixture()
	seeded := f.db.seed("S1", "2024-1", 1000, 400)
	seeded.Status = models.TuitionStatusUnpaid
	f.db.tuitions[seeded.ID] = seeded

	tuition, err := f.tuition.SetTotal(context.Background(), admin, "S1", "2024-1", nil)
	require.NoError(t, err)

	assert.Equal(t, models.TuitionStatusPartial, tuition.Status)
	assert.True(t, tuition.TotalAmount.Equal(d(1000)))
}

func TestTuitionService_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.db.seed("S1", "2024-1", 1000, 0)
	amount := d(1)

	_, err := f.tuition.SetTotal(ctx, admin, "NOPE", "2024-1", &amount)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, err = f.tuition.SetTotal(ctx, admin, "S1", "2099-9", &amount)
	assert.ErrorIs(t, err, ErrTuitionNotFound)

	err = f.tuition.Delete(ctx, admin, "S1", "2099-9")
	assert.ErrorIs(t, err, ErrTuitionNotFound)

	_, err = f.tuition.ListByStudent(ctx, "NOPE", repository.NewListQuery())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestTuitionService_DeleteRemovesPayments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seeded := f.db.seed("S1", "2024-1", 1000, 0)

	_, err := f.payment.ApplyPayment(ctx, Actor{}, PaymentInput{StudentNo: "S1", Term: "2024-1", Amount: d(100)})
	require.NoError(t, err)

	require.NoError(t, f.tuition.Delete(ctx, admin, "S1", "2024-1"))

	_, ok := f.db.tuition("S1", "2024-1")
	assert.False(t, ok)
	assert.Empty(t, f.db.paymentsFor(seeded.ID))

	// Students are kept.
	_, err = f.tuition.ListByStudent(ctx, "S1", nil)
	assert.NoError(t, err)
}

func TestTuitionService_ListByStudentPaginates(t *testing.T) {
	f := newFixture()
	for _, term := range []string{"2024-3", "2024-1", "2024-2"} {
		f.db.seed("S1", term, 100, 0)
	}

	page, err := f.tuition.ListByStudent(context.Background(), "S1", &repository.ListQuery{Page: 2, PerPage: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Tuitions, 1)
	assert.Equal(t, "2024-3", page.Tuitions[0].Term)
	assert.Equal(t, "S1", page.Student.StudentNo)
	assert.Equal(t, 2, page.Query.Page)
}

func TestTuitionService_ListUnpaid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.db.seed("S1", "2024-1", 1000, 0)
	f.db.seed("S2", "2024-1", 1000, 400)
	f.db.seed("S3", "2024-1", 1000, 1000)
	f.db.seed("S4", "2024-2", 1000, 0)

	tuitions, total, err := f.tuition.ListUnpaid(ctx, "2024-1", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	var rows []models.UnpaidStudentResponse
	for i := range tuitions {
		rows = append(rows, tuitions[i].ToUnpaidStudent())
	}
	require.Len(t, rows, 2)
	assert.Equal(t, "S1", rows[0].StudentNo)
	assert.Equal(t, models.TuitionStatusUnpaid, rows[0].Status)
	assert.Equal(t, "S2", rows[1].StudentNo)
	assert.True(t, rows[1].Balance.Equal(decimal.NewFromInt(600)))

	_, _, err = f.tuition.ListUnpaid(ctx, "", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTuitionService_AllUnpaidWalksPages(t *testing.T) {
	f := newFixture()
	for i := 0; i < repository.MaxPageSize+5; i++ {
		f.db.seed(fmt.Sprintf("S%03d", i), "2024-1", 10, 0)
	}

	all, err := f.tuition.AllUnpaid(context.Background(), "2024-1")
	require.NoError(t, err)
	assert.Len(t, all, repository.MaxPageSize+5)
}
