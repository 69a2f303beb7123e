package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/internal/statemachine"
	"github.com/sjperalta/tuition-api/internal/storage"
	"github.com/xuri/excelize/v2"
)

// FileArchiver stores a copy of an uploaded file.
type FileArchiver interface {
	UploadFromBytes(data []byte, filename string, subDir string) (string, error)
}

// ImportRow is one parsed record of a batch file. Line is the 1-based record
// number with the header as record 1.
type ImportRow struct {
	Line int
	TuitionInput
}

// ImportResult summarizes a committed batch.
type ImportResult struct {
	Rows        int    `json:"rows"`
	Created     int    `json:"created"`
	Skipped     int    `json:"skipped"`
	ArchivePath string `json:"archive_path"`
}

// ImportService loads tuition ledgers from CSV or XLSX batch files.
type ImportService struct {
	tx         repository.Transactor
	tuitionSvc *TuitionService
	archive    FileArchiver
	auditSvc   *AuditService
}

func NewImportService(tx repository.Transactor, tuitionSvc *TuitionService, archive FileArchiver, auditSvc *AuditService) *ImportService {
	return &ImportService{tx: tx, tuitionSvc: tuitionSvc, archive: archive, auditSvc: auditSvc}
}

// Import parses the file, archives it and ensures every row in a single
// transaction. Existing ledgers are skipped; any failing row aborts the batch.
func (s *ImportService) Import(ctx context.Context, actor Actor, filename string, data []byte) (*ImportResult, error) {
	rows, err := ParseBatch(filename, data)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Rows: len(rows)}

	if s.archive != nil {
		path, err := s.archive.UploadFromBytes(data, filename, "imports")
		if err != nil {
			err = storageError("archive batch file", err)
			logFailure("import batch", err, "file", filename)
			return nil, err
		}
		result.ArchivePath = path
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			_, created, err := s.tuitionSvc.ensure(ctx, row.TuitionInput, DuplicateSkip)
			if err != nil {
				return fmt.Errorf("row %d: %w", row.Line, err)
			}
			if created {
				result.Created++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		logFailure("import batch", err, "file", filename)
		return nil, err
	}

	s.auditSvc.Log(actor, AuditActionImport, "Tuition", filename,
		fmt.Sprintf("rows=%d created=%d skipped=%d", result.Rows, result.Created, result.Skipped))
	return result, nil
}

// ParseBatch reads a CSV or XLSX file whose first row names the columns
// student_no, term, amount and optionally student_name.
func ParseBatch(filename string, data []byte) ([]ImportRow, error) {
	var (
		records [][]string
		err     error
	)
	switch storage.ImportFormat(filename) {
	case storage.FormatCSV:
		records, err = readCSV(data)
	case storage.FormatXLSX:
		records, err = readXLSX(data)
	default:
		return nil, validationError("file", "unsupported file type %q, expected .csv or .xlsx", filename)
	}
	if err != nil {
		return nil, err
	}
	return rowsFromRecords(records)
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, validationError("file", "invalid CSV: %v", err)
	}
	return records, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, validationError("file", "invalid XLSX: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, validationError("file", "XLSX has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, validationError("file", "invalid XLSX: %v", err)
	}
	return rows, nil
}

type batchColumns struct {
	studentNo, term, amount, name int
}

func rowsFromRecords(records [][]string) ([]ImportRow, error) {
	if len(records) == 0 {
		return nil, validationError("file", "file is empty")
	}

	cols, err := headerColumns(records[0])
	if err != nil {
		return nil, err
	}

	var rows []ImportRow
	for i, record := range records[1:] {
		line := i + 2
		if blankRecord(record) {
			continue
		}

		studentNo := cell(record, cols.studentNo)
		term := cell(record, cols.term)
		if studentNo == "" || term == "" {
			return nil, validationError("file", "row %d: student_no and term are required", line)
		}

		amount, err := decimal.NewFromString(cell(record, cols.amount))
		if err != nil {
			return nil, validationError("amount", "row %d: invalid amount %q", line, cell(record, cols.amount))
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("row %d: %w: amount must not be negative", line, ErrInvalidAmount)
		}
		if err := statemachine.ValidateAmount(amount); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		rows = append(rows, ImportRow{
			Line: line,
			TuitionInput: TuitionInput{
				StudentNo:   studentNo,
				StudentName: cell(record, cols.name),
				Term:        term,
				Amount:      amount,
			},
		})
	}

	if len(rows) == 0 {
		return nil, validationError("file", "file has no data rows")
	}
	return rows, nil
}

func headerColumns(header []string) (batchColumns, error) {
	cols := batchColumns{studentNo: -1, term: -1, amount: -1, name: -1}
	for i, h := range header {
		switch normalizeHeader(h) {
		case "student_no", "studentno", "student_number":
			cols.studentNo = i
		case "term":
			cols.term = i
		case "amount", "tuition_total", "total":
			cols.amount = i
		case "student_name", "name":
			cols.name = i
		}
	}

	var missing []string
	if cols.studentNo < 0 {
		missing = append(missing, "student_no")
	}
	if cols.term < 0 {
		missing = append(missing, "term")
	}
	if cols.amount < 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return cols, validationError("file", "missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
