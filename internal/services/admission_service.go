package services

import (
	"context"
	"errors"
	"time"

	"github.com/sjperalta/tuition-api/internal/admission"
	"github.com/sjperalta/tuition-api/internal/jobs"
	"github.com/sjperalta/tuition-api/pkg/logger"
)

// AdmissionStats is the administrator view of the admission controller.
type AdmissionStats struct {
	DailyQuota int                     `json:"daily_quota"`
	Usage      admission.Usage         `json:"usage"`
	Decisions  admission.StatsSnapshot `json:"decisions"`
}

// AdmissionService applies the daily admission policy and records decisions.
type AdmissionService struct {
	policy *admission.Policy
	stats  admission.StatsStore
	worker *jobs.Worker
	clock  admission.Clock
}

func NewAdmissionService(policy *admission.Policy, stats admission.StatsStore, worker *jobs.Worker) *AdmissionService {
	return &AdmissionService{policy: policy, stats: stats, worker: worker, clock: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *AdmissionService) WithClock(clock admission.Clock) *AdmissionService {
	s.clock = clock
	return s
}

// Check records one request for key and returns the decision. A denied
// request also returns ErrRateLimited. Recording the decision in the stats
// store is best-effort.
func (s *AdmissionService) Check(ctx context.Context, key, route string) (admission.Decision, error) {
	now := s.clock()
	dec, err := s.policy.CheckAndRecord(ctx, key, now)
	if err != nil {
		if errors.Is(err, admission.ErrEmptyKey) {
			return dec, validationError("key", "student_no is required")
		}
		return dec, storageError("admission check", err)
	}

	if s.stats != nil {
		ev := admission.StatsEvent{Key: key, Allowed: dec.Allowed, Route: route, At: now}
		record := func(ctx context.Context) error { return s.stats.Record(ctx, ev) }
		if s.worker != nil {
			s.worker.EnqueueAsync("admission-stats", record)
		} else if err := record(ctx); err != nil {
			logger.Warn("admission stats record failed", "error", err)
		}
	}

	if !dec.Allowed {
		return dec, ErrRateLimited
	}
	return dec, nil
}

// DeniedMessage is the client-facing body text for a denied request.
func (s *AdmissionService) DeniedMessage() string {
	return s.policy.DeniedMessage()
}

// Stats returns store usage and recorded decisions.
func (s *AdmissionService) Stats(ctx context.Context) (*AdmissionStats, error) {
	usage, err := s.policy.Store().Usage(ctx)
	if err != nil {
		return nil, storageError("admission usage", err)
	}

	out := &AdmissionStats{DailyQuota: s.policy.Quota(), Usage: usage}
	if s.stats != nil {
		snap, err := s.stats.Snapshot(ctx)
		if err != nil {
			return nil, storageError("admission stats", err)
		}
		out.Decisions = snap
	}
	return out, nil
}

// ReportUsage logs how many keys and events the admission store retains.
// Entries are pruned only when their key is written again, so this is the
// place to watch the store grow.
func (s *AdmissionService) ReportUsage(ctx context.Context) error {
	usage, err := s.policy.Store().Usage(ctx)
	if err != nil {
		return err
	}
	logger.Info("admission store usage", "tracked_keys", usage.Keys, "retained_events", usage.Events)
	return nil
}
