// Package usecase implements the authentication business logic.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/auth/domain"
	"github.com/allisson/devsync/internal/auth/service"
	"github.com/allisson/devsync/internal/database"
	apperrors "github.com/allisson/devsync/internal/errors"
	appValidation "github.com/allisson/devsync/internal/validation"
)

// LoginInput contains the input data for login.
// Identifier accepts either a username or an email address.
type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginOutput contains the issued session token.
type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignupInput contains the input data for account creation.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUseCase defines the interface for authentication business logic.
type AuthUseCase interface {
	// Login verifies credentials and issues a signed session token.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Signup creates a new account with default settings.
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)

	// Authenticate resolves a bearer token to a live user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// UserRepository defines the user persistence operations the usecase depends on.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLockout(ctx context.Context, id uuid.UUID, failedAttempts int, lockedUntil *time.Time) error
}

// SettingsInitializer creates the default settings row for a new user.
// Implemented by the settings module; declared here to keep the dependency
// direction pointing outward.
type SettingsInitializer interface {
	CreateDefaults(ctx context.Context, userID uuid.UUID) error
}

// LockoutPolicy controls the failed-attempt lockout behavior.
type LockoutPolicy struct {
	MaxAttempts int
	Duration    time.Duration
}

// AuthenticationUseCase handles login, signup, and token authentication.
type AuthenticationUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	settingsInit    SettingsInitializer
	passwordService service.PasswordService
	tokenCodec      service.TokenCodec
	lockout         LockoutPolicy
	now             func() time.Time
}

// NewAuthenticationUseCase creates a new AuthenticationUseCase.
// The now function supplies the current time for lockout decisions; pass
// time.Now in production.
func NewAuthenticationUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	settingsInit SettingsInitializer,
	passwordService service.PasswordService,
	tokenCodec service.TokenCodec,
	lockout LockoutPolicy,
	now func() time.Time,
) AuthUseCase {
	if now == nil {
		now = time.Now
	}

	return &AuthenticationUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		settingsInit:    settingsInit,
		passwordService: passwordService,
		tokenCodec:      tokenCodec,
		lockout:         lockout,
		now:             now,
	}
}

// validateLoginInput checks that both login fields are present.
func (uc *AuthenticationUseCase) validateLoginInput(input LoginInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Identifier,
			validation.Required.Error("identifier is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// validateSignupInput validates the signup input using jellydator/validation.
func (uc *AuthenticationUseCase) validateSignupInput(input SignupInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Login verifies the identifier and password and issues a signed token.
// Unknown identifiers and password mismatches return the same error so
// responses cannot be used to probe which accounts exist.
func (uc *AuthenticationUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := uc.validateLoginInput(input); err != nil {
		return nil, err
	}

	user, err := uc.lookupByIdentifier(ctx, strings.TrimSpace(input.Identifier))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := uc.now()
	if user.IsLocked(now) {
		return nil, domain.ErrUserLocked
	}
	if !user.IsActive {
		return nil, domain.ErrUserDisabled
	}

	if !uc.passwordService.Verify(input.Password, user.Password) {
		if err := uc.recordFailedAttempt(ctx, user, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.clearLockout(ctx, user); err != nil {
		return nil, err
	}

	// Accounts imported with legacy hashes get a current hash on first login.
	if uc.passwordService.NeedsRehash(user.Password) {
		if newHash, hashErr := uc.passwordService.Hash(input.Password); hashErr == nil {
			if err := uc.userRepo.UpdatePassword(ctx, user.ID, newHash); err != nil {
				return nil, err
			}
		}
	}

	token, expiresAt, err := uc.tokenCodec.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Token: token, ExpiresAt: expiresAt}, nil
}

// lookupByIdentifier tries the identifier as a username first, then as an email.
func (uc *AuthenticationUseCase) lookupByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return uc.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
}

// recordFailedAttempt increments the counter and locks the account once the
// policy threshold is reached.
func (uc *AuthenticationUseCase) recordFailedAttempt(ctx context.Context, user *domain.User, now time.Time) error {
	attempts := user.FailedAttempts + 1

	var lockedUntil *time.Time
	if uc.lockout.MaxAttempts > 0 && attempts >= uc.lockout.MaxAttempts {
		until := now.Add(uc.lockout.Duration)
		lockedUntil = &until
	}

	return uc.userRepo.UpdateLockout(ctx, user.ID, attempts, lockedUntil)
}

// clearLockout resets the failed-attempt state after a successful login.
func (uc *AuthenticationUseCase) clearLockout(ctx context.Context, user *domain.User) error {
	if user.FailedAttempts == 0 && user.LockedUntil == nil {
		return nil
	}
	return uc.userRepo.UpdateLockout(ctx, user.ID, 0, nil)
}

// Signup creates a new account and its default settings atomically.
// Duplicate checks run before the insert so each conflict gets a distinct
// message; the unique constraints remain the final arbiter under concurrency.
func (uc *AuthenticationUseCase) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if err := uc.validateSignupInput(input); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameAlreadyExists
	}

	exists, err = uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashedPassword, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Roles:    []string{domain.GlobalRoleMember},
		IsActive: true,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return uc.settingsInit.CreateDefaults(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies the token and resolves its subject to a live user.
// Disabled and locked accounts fail authentication even with a valid token.
func (uc *AuthenticationUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	subject, err := uc.tokenCodec.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, subject)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserDisabled
	}
	if user.IsLocked(uc.now()) {
		return nil, domain.ErrUserLocked
	}

	return user, nil
}
