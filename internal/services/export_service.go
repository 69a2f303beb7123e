package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

// ExportFile is a rendered report ready to download.
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ExportService renders the unpaid tuition report.
type ExportService struct {
	tuitionSvc *TuitionService
	now        func() time.Time
}

func NewExportService(tuitionSvc *TuitionService) *ExportService {
	return &ExportService{tuitionSvc: tuitionSvc, now: time.Now}
}

var unpaidHeader = []string{"Student No", "Name", "Tuition Total", "Paid Amount", "Balance", "Status"}

// UnpaidReport renders every unpaid ledger of term in the given format.
func (s *ExportService) UnpaidReport(ctx context.Context, term, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatXLSX && format != ExportFormatPDF {
		return nil, validationError("format", "format must be csv, xlsx or pdf")
	}

	tuitions, err := s.tuitionSvc.AllUnpaid(ctx, term)
	if err != nil {
		return nil, err
	}

	rows := make([]models.UnpaidStudentResponse, len(tuitions))
	for i := range tuitions {
		rows[i] = tuitions[i].ToUnpaidStudent()
	}

	switch format {
	case ExportFormatXLSX:
		return s.ExportXLSX(term, rows)
	case ExportFormatPDF:
		return s.ExportPDF(term, rows)
	default:
		return s.ExportCSV(term, rows)
	}
}

func (s *ExportService) filename(term, ext string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '-'
		}
		return r
	}, term)
	return fmt.Sprintf("unpaid_%s_%s.%s", safe, s.now().Format("2006-01-02"), ext)
}

func unpaidRecord(r models.UnpaidStudentResponse) []string {
	return []string{
		r.StudentNo,
		r.Name,
		r.TuitionTotal.StringFixed(2),
		r.PaidAmount.StringFixed(2),
		r.Balance.StringFixed(2),
		r.Status,
	}
}

func (s *ExportService) ExportCSV(term string, rows []models.UnpaidStudentResponse) (*ExportFile, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write(unpaidHeader)
	for _, r := range rows {
		_ = writer.Write(unpaidRecord(r))
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return &ExportFile{Data: buf.Bytes(), Filename: s.filename(term, "csv"), ContentType: "text/csv"}, nil
}

func (s *ExportService) ExportXLSX(term string, rows []models.UnpaidStudentResponse) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Unpaid"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, h := range unpaidHeader {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cellName, h)
	}
	_ = f.SetCellStyle(sheet, "A1", "F1", headerStyle)

	for i, r := range rows {
		row := i + 2
		total, _ := r.TuitionTotal.Float64()
		paid, _ := r.PaidAmount.Float64()
		balance, _ := r.Balance.Float64()
		values := []any{r.StudentNo, r.Name, total, paid, balance, r.Status}
		for col, v := range values {
			cellName, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cellName, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Data:        buf.Bytes(),
		Filename:    s.filename(term, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

func (s *ExportService) ExportPDF(term string, rows []models.UnpaidStudentResponse) (*ExportFile, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Unpaid Tuition Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, fmt.Sprintf("Term: %s    Generated: %s    Students: %d", term, s.now().Format("2006-01-02 15:04"), len(rows)))
	pdf.Ln(12)

	widths := []float64{40, 80, 35, 35, 35, 30}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, h := range unpaidHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		for i, v := range unpaidRecord(r) {
			align := "L"
			if i >= 2 && i <= 4 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}

	return &ExportFile{Data: buf.Bytes(), Filename: s.filename(term, "pdf"), ContentType: "application/pdf"}, nil
}
