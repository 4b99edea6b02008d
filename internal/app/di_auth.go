package app

import (
	"fmt"
	"time"

	authRepository "github.com/allisson/devsync/internal/auth/repository"
	authService "github.com/allisson/devsync/internal/auth/service"
	authUsecase "github.com/allisson/devsync/internal/auth/usecase"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	c.passwordServiceInit.Do(func() {
		service, err := authService.NewPasswordService()
		if err != nil {
			c.initErrors["passwordService"] = fmt.Errorf("failed to create password service: %w", err)
			return
		}
		c.passwordService = service
	})
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// TokenCodec returns the session token codec.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.tokenCodecInit.Do(func() {
		codec, err := authService.NewTokenCodec(
			c.config.AuthTokenSecret,
			c.config.AuthTokenLifetime,
			time.Now,
		)
		if err != nil {
			c.initErrors["tokenCodec"] = fmt.Errorf("failed to create token codec: %w", err)
			return
		}
		c.tokenCodec = codec
	})
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (authUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = authRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = authRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// AuthUseCase returns the authentication use case instance.
func (c *Container) AuthUseCase() (authUsecase.AuthUseCase, error) {
	c.authUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get tx manager for auth use case: %w", err)
			return
		}

		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get user repository for auth use case: %w", err)
			return
		}

		settingsUseCase, err := c.SettingsUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get settings use case for auth use case: %w", err)
			return
		}

		passwordService, err := c.PasswordService()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get password service for auth use case: %w", err)
			return
		}

		tokenCodec, err := c.TokenCodec()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get token codec for auth use case: %w", err)
			return
		}

		useCase := authUsecase.NewAuthenticationUseCase(
			txManager,
			userRepo,
			settingsUseCase,
			passwordService,
			tokenCodec,
			authUsecase.LockoutPolicy{
				MaxAttempts: c.config.LockoutMaxAttempts,
				Duration:    c.config.LockoutDuration,
			},
			time.Now,
		)

		if c.config.MetricsEnabled {
			bm, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["authUseCase"] = fmt.Errorf("failed to get business metrics for auth use case: %w", err)
				return
			}
			useCase = authUsecase.NewAuthUseCaseWithMetrics(useCase, bm)
		}

		c.authUseCase = useCase
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}
