package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/services"
)

// BankingHandler serves tuition queries and payments for banks and the
// mobile app.
type BankingHandler struct {
	tuitionService *services.TuitionService
	paymentService *services.PaymentService
}

func NewBankingHandler(tuitionSvc *services.TuitionService, paymentSvc *services.PaymentService) *BankingHandler {
	return &BankingHandler{tuitionService: tuitionSvc, paymentService: paymentSvc}
}

// StudentTuitionResponse is one page of a student's ledgers.
type StudentTuitionResponse struct {
	StudentNo    string                       `json:"student_no"`
	Name         string                       `json:"name"`
	TotalRecords int64                        `json:"total_records"`
	Page         int                          `json:"page"`
	PageSize     int                          `json:"page_size"`
	Tuitions     []models.TermBalanceResponse `json:"tuitions"`
}

type PaymentRequest struct {
	StudentNo string          `json:"student_no"`
	Term      string          `json:"term"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"number"`
}

type PaymentResponse struct {
	PaymentStatus string          `json:"payment_status"`
	NewBalance    decimal.Decimal `json:"new_balance" swaggertype:"number"`
	Reference     string          `json:"reference"`
}

// @Summary Query Tuition
// @Description Lists a student's tuition per term. The mobile route is limited to 3 calls per student per UTC day.
// @Tags Banking
// @Produce json
// @Param studentNo path string true "Student number"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} StudentTuitionResponse
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /banking/tuition/{studentNo} [get]
// @Router /mobile/tuition/{studentNo} [get]
func (h *BankingHandler) Tuition(c *gin.Context) {
	query := listQuery(c)

	result, err := h.tuitionService.ListByStudent(c.Request.Context(), c.Param("studentNo"), query)
	if err != nil {
		respondError(c, err)
		return
	}

	tuitions := make([]models.TermBalanceResponse, len(result.Tuitions))
	for i := range result.Tuitions {
		tuitions[i] = result.Tuitions[i].ToTermBalance()
	}

	c.JSON(http.StatusOK, StudentTuitionResponse{
		StudentNo:    result.Student.StudentNo,
		Name:         result.Student.Name,
		TotalRecords: result.Total,
		Page:         result.Query.Page,
		PageSize:     result.Query.PerPage,
		Tuitions:     tuitions,
	})
}

// @Summary Pay Tuition
// @Description Applies a bank payment to a student's tuition for a term
// @Tags Banking
// @Accept json
// @Produce json
// @Param request body PaymentRequest true "Payment"
// @Success 200 {object} PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /banking/payment [post]
func (h *BankingHandler) Pay(c *gin.Context) {
	var req PaymentRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"payment_status": statusError, "message": "Invalid request body"})
		return
	}

	result, err := h.paymentService.ApplyPayment(c.Request.Context(), actor(c), services.PaymentInput{
		StudentNo: req.StudentNo,
		Term:      req.Term,
		Amount:    req.Amount,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		PaymentStatus: statusSuccessful,
		NewBalance:    result.NewBalance,
		Reference:     result.Reference,
	})
}
