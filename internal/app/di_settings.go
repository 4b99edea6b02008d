package app

import (
	"fmt"

	settingsRepository "github.com/allisson/devsync/internal/settings/repository"
	settingsUsecase "github.com/allisson/devsync/internal/settings/usecase"
)

// SettingsRepository returns the user settings repository instance.
func (c *Container) SettingsRepository() (settingsUsecase.SettingsRepository, error) {
	c.settingsRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["settingsRepo"] = fmt.Errorf("failed to get database for settings repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.settingsRepo = settingsRepository.NewMySQLSettingsRepository(db)
		case "postgres":
			c.settingsRepo = settingsRepository.NewPostgreSQLSettingsRepository(db)
		default:
			c.initErrors["settingsRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["settingsRepo"]; exists {
		return nil, storedErr
	}
	return c.settingsRepo, nil
}

// SettingsUseCase returns the user settings use case instance.
func (c *Container) SettingsUseCase() (settingsUsecase.SettingsUseCase, error) {
	c.settingsUseCaseInit.Do(func() {
		settingsRepo, err := c.SettingsRepository()
		if err != nil {
			c.initErrors["settingsUseCase"] = fmt.Errorf("failed to get settings repository for settings use case: %w", err)
			return
		}

		useCase := settingsUsecase.NewSettingsUseCase(settingsRepo)

		if c.config.MetricsEnabled {
			bm, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["settingsUseCase"] = fmt.Errorf("failed to get business metrics for settings use case: %w", err)
				return
			}
			useCase = settingsUsecase.NewSettingsUseCaseWithMetrics(useCase, bm)
		}

		c.settingsUseCase = useCase
	})
	if storedErr, exists := c.initErrors["settingsUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingsUseCase, nil
}
