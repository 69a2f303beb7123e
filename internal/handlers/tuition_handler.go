package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/services"
	"github.com/sjperalta/tuition-api/internal/storage"
)

// TuitionHandler serves the administrator tuition routes.
type TuitionHandler struct {
	tuitionService *services.TuitionService
	importService  *services.ImportService
	exportService  *services.ExportService
}

func NewTuitionHandler(tuitionSvc *services.TuitionService, importSvc *services.ImportService, exportSvc *services.ExportService) *TuitionHandler {
	return &TuitionHandler{
		tuitionService: tuitionSvc,
		importService:  importSvc,
		exportService:  exportSvc,
	}
}

type CreateTuitionRequest struct {
	StudentNo   string          `json:"student_no"`
	Term        string          `json:"term"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
	StudentName string          `json:"student_name"`
}

type UpdateTuitionRequest struct {
	Term   string           `json:"term"`
	Amount *decimal.Decimal `json:"amount" swaggertype:"number"`
}

// UnpaidResponse is one page of the unpaid report.
type UnpaidResponse struct {
	TotalRecords int64                          `json:"total_records"`
	Page         int                            `json:"page"`
	PageSize     int                            `json:"page_size"`
	Students     []models.UnpaidStudentResponse `json:"students"`
}

// @Summary Create Tuition
// @Description Creates the tuition ledger of a student for a term. The student is created when absent.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body CreateTuitionRequest true "Tuition (flat or nested under \"tuition\")"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tuition [post]
func (h *TuitionHandler) Create(c *gin.Context) {
	var req CreateTuitionRequest
	if err := BindNestedOrFlat(c, "tuition", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"transaction_status": statusError, "message": "Invalid request body"})
		return
	}

	_, err := h.tuitionService.Create(c.Request.Context(), actor(c), services.TuitionInput{
		StudentNo:   req.StudentNo,
		StudentName: req.StudentName,
		Term:        req.Term,
		Amount:      req.Amount,
	})
	if err != nil {
		respondTransactionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction_status": statusSuccess})
}

// @Summary Batch Create Tuitions
// @Description Loads tuition ledgers from a CSV or XLSX file in one transaction. Existing ledgers are skipped.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Batch file (.csv or .xlsx)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tuition/batch [post]
func (h *TuitionHandler) Batch(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil || file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"transaction_status": statusError, "message": "No file uploaded"})
		return
	}
	if file.Size > storage.MaxImportSize() {
		c.JSON(http.StatusBadRequest, gin.H{"transaction_status": statusError, "message": "File exceeds the 10MB limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondTransactionError(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		respondTransactionError(c, err)
		return
	}

	result, err := h.importService.Import(c.Request.Context(), actor(c), file.Filename, data)
	if err != nil {
		respondTransactionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction_status": statusSuccess,
		"message":            fmt.Sprintf("%d created, %d skipped", result.Created, result.Skipped),
		"rows":               result.Rows,
		"created":            result.Created,
		"skipped":            result.Skipped,
	})
}

// @Summary Unpaid Tuitions
// @Description Lists the students of a term whose tuition is not fully paid
// @Tags Admin
// @Produce json
// @Param term query string true "Term"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} UnpaidResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tuition/unpaid [get]
func (h *TuitionHandler) Unpaid(c *gin.Context) {
	query := listQuery(c)

	tuitions, total, err := h.tuitionService.ListUnpaid(c.Request.Context(), c.Query("term"), query)
	if err != nil {
		respondTransactionError(c, err)
		return
	}

	students := make([]models.UnpaidStudentResponse, len(tuitions))
	for i := range tuitions {
		students[i] = tuitions[i].ToUnpaidStudent()
	}

	c.JSON(http.StatusOK, UnpaidResponse{
		TotalRecords: total,
		Page:         query.Page,
		PageSize:     query.PerPage,
		Students:     students,
	})
}

// @Summary Export Unpaid Tuitions
// @Description Downloads every unpaid tuition of a term as CSV, XLSX or PDF
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param term query string true "Term"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file "report"
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tuition/unpaid/export [get]
func (h *TuitionHandler) ExportUnpaid(c *gin.Context) {
	file, err := h.exportService.UnpaidReport(c.Request.Context(), c.Query("term"), c.Query("format"))
	if err != nil {
		respondTransactionError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// @Summary Delete Tuition
// @Description Removes a student's tuition ledger for a term together with its payments
// @Tags Admin
// @Produce json
// @Param studentNo path string true "Student number"
// @Param term query string true "Term"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tuition/{studentNo} [delete]
func (h *TuitionHandler) Delete(c *gin.Context) {
	if err := h.tuitionService.Delete(c.Request.Context(), actor(c), c.Param("studentNo"), c.Query("term")); err != nil {
		respondTransactionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction_status": statusSuccess, "message": "Tuition deleted"})
}

// @Summary Update Tuition
// @Description Replaces the total of a ledger and recomputes its status. Without amount only the status is recomputed.
// @Tags Admin
// @Accept json
// @Produce json
// @Param studentNo path string true "Student number"
// @Param request body UpdateTuitionRequest true "Term and new total"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tuition/{studentNo} [put]
func (h *TuitionHandler) Update(c *gin.Context) {
	var req UpdateTuitionRequest
	if err := BindNestedOrFlat(c, "tuition", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"transaction_status": statusError, "message": "Invalid request body"})
		return
	}

	tuition, err := h.tuitionService.SetTotal(c.Request.Context(), actor(c), c.Param("studentNo"), req.Term, req.Amount)
	if err != nil {
		respondTransactionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction_status": statusSuccess,
		"message":            "Tuition updated",
		"tuition":            tuition.ToTermBalance(),
	})
}
