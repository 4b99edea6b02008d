package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/metrics"
	"github.com/allisson/devsync/internal/settings/domain"
)

// settingsUseCaseWithMetrics decorates SettingsUseCase with metrics instrumentation.
type settingsUseCaseWithMetrics struct {
	next    SettingsUseCase
	metrics metrics.BusinessMetrics
}

// NewSettingsUseCaseWithMetrics wraps a SettingsUseCase with metrics recording.
func NewSettingsUseCaseWithMetrics(useCase SettingsUseCase, m metrics.BusinessMetrics) SettingsUseCase {
	return &settingsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation outcome with its duration.
func (s *settingsUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "settings", operation, status)
	s.metrics.RecordDuration(ctx, "settings", operation, time.Since(start), status)
}

func (s *settingsUseCaseWithMetrics) Initialize(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	start := time.Now()
	settings, err := s.next.Initialize(ctx, userID)
	s.record(ctx, "initialize", start, err)
	return settings, err
}

func (s *settingsUseCaseWithMetrics) CreateDefaults(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := s.next.CreateDefaults(ctx, userID)
	s.record(ctx, "create_defaults", start, err)
	return err
}

func (s *settingsUseCaseWithMetrics) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	start := time.Now()
	settings, err := s.next.Get(ctx, userID)
	s.record(ctx, "get", start, err)
	return settings, err
}

func (s *settingsUseCaseWithMetrics) UpdateSection(ctx context.Context, userID uuid.UUID, section domain.Section, payload json.RawMessage) (*domain.UserSettings, error) {
	start := time.Now()
	settings, err := s.next.UpdateSection(ctx, userID, section, payload)
	s.record(ctx, "update_section", start, err)
	return settings, err
}

func (s *settingsUseCaseWithMetrics) Reset(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	start := time.Now()
	settings, err := s.next.Reset(ctx, userID)
	s.record(ctx, "reset", start, err)
	return settings, err
}
