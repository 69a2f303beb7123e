package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExportFixture(t *testing.T) *ExportService {
	t.Helper()
	f := newFixture()
	f.db.seed("S1", "2024-1", 1000, 0)
	f.db.seed("S2", "2024-1", 1000, 250)
	f.db.seed("S3", "2024-1", 1000, 1000)

	svc := NewExportService(f.tuition)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportService_UnpaidCSV(t *testing.T) {
	svc := newExportFixture(t)

	file, err := svc.UnpaidReport(context.Background(), "2024-1", "")
	require.NoError(t, err)

	assert.Equal(t, "unpaid_2024-1_2024-03-10.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t,
		"Student No,Name,Tuition Total,Paid Amount,Balance,Status\n"+
			"S1,Seeded S1,1000.00,0.00,1000.00,Unpaid\n"+
			"S2,Seeded S2,1000.00,250.00,750.00,Partial\n",
		string(file.Data))
}

func TestExportService_UnpaidXLSX(t *testing.T) {
	svc := newExportFixture(t)

	file, err := svc.UnpaidReport(context.Background(), "2024-1", "XLSX")
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Unpaid")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Student No", rows[0][0])
	assert.Equal(t, "S2", rows[2][0])
	assert.Equal(t, "Partial", rows[2][5])
}

func TestExportService_UnpaidPDF(t *testing.T) {
	svc := newExportFixture(t)

	file, err := svc.UnpaidReport(context.Background(), "2024-1", "pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportService_Validation(t *testing.T) {
	svc := newExportFixture(t)

	_, err := svc.UnpaidReport(context.Background(), "2024-1", "doc")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UnpaidReport(context.Background(), "", "csv")
	assert.ErrorIs(t, err, ErrValidation)
}
