package handlers

import (
	"github.com/sjperalta/tuition-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Tuition   *TuitionHandler
	Banking   *BankingHandler
	Audit     *AuditHandler
	Job       *JobHandler
	Admission *AdmissionHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Auth:      NewAuthHandler(svcs.Auth),
		Tuition:   NewTuitionHandler(svcs.Tuition, svcs.Import, svcs.Export),
		Banking:   NewBankingHandler(svcs.Tuition, svcs.Payment),
		Audit:     NewAuditHandler(svcs.Audit),
		Job:       NewJobHandler(svcs.Job),
		Admission: NewAdmissionHandler(svcs.Admission),
	}
}
