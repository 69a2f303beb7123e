package services

import (
	"context"

	"github.com/sjperalta/tuition-api/internal/jobs"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/pkg/logger"
)

// Audit actions
const (
	AuditActionCreate  = "CREATE"
	AuditActionUpdate  = "UPDATE"
	AuditActionDelete  = "DELETE"
	AuditActionImport  = "IMPORT"
	AuditActionPayment = "PAYMENT"
)

// Actor identifies who triggered a mutation.
type Actor struct {
	Username  string
	IP        string
	UserAgent string
}

func (a Actor) name() string {
	if a.Username == "" {
		return "anonymous"
	}
	return a.Username
}

type AuditService struct {
	repo   repository.AuditRepository
	worker *jobs.Worker
}

func NewAuditService(repo repository.AuditRepository, worker *jobs.Worker) *AuditService {
	return &AuditService{repo: repo, worker: worker}
}

// Log records an audit entry in the background. Failures are logged and
// never reach the caller. A nil service is a no-op.
func (s *AuditService) Log(actor Actor, action, entity, entityKey, details string) {
	if s == nil || s.repo == nil {
		return
	}

	entry := &models.AuditLog{
		Actor:     actor.name(),
		Action:    action,
		Entity:    entity,
		EntityKey: entityKey,
		Details:   details,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}

	write := func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			logger.Warn("audit write failed", "action", action, "entity_key", entityKey, "error", err)
			return err
		}
		return nil
	}

	if s.worker == nil {
		_ = write(context.Background())
		return
	}
	s.worker.EnqueueAsync("audit", write)
}

// List retrieves audit logs, newest first
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	logs, total, err := s.repo.List(ctx, query.Normalize())
	if err != nil {
		return nil, 0, storageError("list audits", err)
	}
	return logs, total, nil
}
