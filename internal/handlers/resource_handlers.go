package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tuition-api/internal/services"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "tuition-api",
		"version": "1.0.0",
	})
}

type AdmissionHandler struct {
	admissionService *services.AdmissionService
}

func NewAdmissionHandler(admissionSvc *services.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{admissionService: admissionSvc}
}

// @Summary Admission Stats
// @Description Daily quota, store usage and allowed/denied counts of the mobile admission control
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.AdmissionStats
// @Router /admin/admission/stats [get]
func (h *AdmissionHandler) Stats(c *gin.Context) {
	stats, err := h.admissionService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Paginated audit log of administrative and payment mutations, newest first
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Param actor query string false "Filter by actor"
// @Param action query string false "Filter by action"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := listQuery(c)
	query.Filters["actor"] = c.Query("actor")
	query.Filters["action"] = c.Query("action")

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audits":        logs,
		"total_records": total,
		"page":          query.Page,
		"page_size":     query.PerPage,
	})
}
