package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/devsync/internal/app"
	authDomain "github.com/allisson/devsync/internal/auth/domain"
	"github.com/allisson/devsync/internal/config"
	appValidation "github.com/allisson/devsync/internal/validation"
)

// RunCreateAdmin creates a user holding the global ADMIN role.
// Regular signup always produces MEMBER accounts, so this command is the
// only way to bootstrap the first administrator. The account is created
// together with its default settings in a single transaction.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAdmin(ctx context.Context, username, email, password string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	if err := validateAdminInput(username, email, password); err != nil {
		return err
	}

	txManager, err := container.TxManager()
	if err != nil {
		return fmt.Errorf("failed to get tx manager: %w", err)
	}

	userRepo, err := container.UserRepository()
	if err != nil {
		return fmt.Errorf("failed to get user repository: %w", err)
	}

	settingsUseCase, err := container.SettingsUseCase()
	if err != nil {
		return fmt.Errorf("failed to get settings use case: %w", err)
	}

	passwordService, err := container.PasswordService()
	if err != nil {
		return fmt.Errorf("failed to get password service: %w", err)
	}

	passwordHash, err := passwordService.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &authDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: username,
		Email:    email,
		Password: passwordHash,
		Roles:    []string{authDomain.GlobalRoleAdmin, authDomain.GlobalRoleMember},
		IsActive: true,
	}

	err = txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return settingsUseCase.CreateDefaults(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Printf("User ID: %s\n", user.ID.String())
	fmt.Printf("Username: %s\n", user.Username)

	logger.Info("admin user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)

	return nil
}

// validateAdminInput applies the same credential rules enforced on signup.
func validateAdminInput(username, email, password string) error {
	input := struct {
		Username string
		Email    string
		Password string
	}{username, email, password}

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
