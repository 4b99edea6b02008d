package usecase

import (
	"context"
	"time"

	"github.com/allisson/devsync/internal/auth/domain"
	"github.com/allisson/devsync/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "login", status)
	a.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return output, err
}

// Signup records metrics for signup operations.
func (a *authUseCaseWithMetrics) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	start := time.Now()
	user, err := a.next.Signup(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "signup", status)
	a.metrics.RecordDuration(ctx, "auth", "signup", time.Since(start), status)

	return user, err
}

// Authenticate records metrics for token authentication operations.
func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	start := time.Now()
	user, err := a.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "token_authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "token_authenticate", time.Since(start), status)

	return user, err
}
