package services

import (
	"github.com/sjperalta/tuition-api/internal/admission"
	"github.com/sjperalta/tuition-api/internal/config"
	"github.com/sjperalta/tuition-api/internal/jobs"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/internal/storage"
	"github.com/sjperalta/tuition-api/pkg/keylock"
)

// Services holds all service instances
type Services struct {
	Auth      *AuthService
	Tuition   *TuitionService
	Payment   *PaymentService
	Import    *ImportService
	Audit     *AuditService
	Export    *ExportService
	Job       *JobService
	Admission *AdmissionService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, storage *storage.LocalStorage, cfg *config.Config, policy *admission.Policy, admissionStats admission.StatsStore) *Services {
	auditSvc := NewAuditService(repos.Audit, worker)
	// Tuition and payment mutations of the same ledger share one lock set.
	locks := keylock.New()

	tuitionSvc := NewTuitionService(repos.Tx, repos.Student, repos.Tuition, locks, auditSvc)

	return &Services{
		Auth:      NewAuthService(repos.User, cfg),
		Tuition:   tuitionSvc,
		Payment:   NewPaymentService(repos.Tx, repos.Student, repos.Tuition, repos.Payment, locks, auditSvc),
		Import:    NewImportService(repos.Tx, tuitionSvc, storage, auditSvc),
		Audit:     auditSvc,
		Export:    NewExportService(tuitionSvc),
		Job:       NewJobService(worker),
		Admission: NewAdmissionService(policy, admissionStats, worker),
	}
}
