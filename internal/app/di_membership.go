package app

import (
	"fmt"

	chatUsecase "github.com/allisson/devsync/internal/chat/usecase"
	membershipRepository "github.com/allisson/devsync/internal/membership/repository"
	membershipUsecase "github.com/allisson/devsync/internal/membership/usecase"
)

// MembershipRepository returns the conversation membership repository instance.
func (c *Container) MembershipRepository() (chatUsecase.MembershipRepository, error) {
	c.membershipRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["membershipRepo"] = fmt.Errorf("failed to get database for membership repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.membershipRepo = membershipRepository.NewMySQLMembershipRepository(db)
		case "postgres":
			c.membershipRepo = membershipRepository.NewPostgreSQLMembershipRepository(db)
		default:
			c.initErrors["membershipRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["membershipRepo"]; exists {
		return nil, storedErr
	}
	return c.membershipRepo, nil
}

// AuthorizationUseCase returns the conversation authorization use case instance.
func (c *Container) AuthorizationUseCase() (membershipUsecase.AuthorizationUseCase, error) {
	c.authorizationUseCaseInit.Do(func() {
		membershipRepo, err := c.MembershipRepository()
		if err != nil {
			c.initErrors["authorizationUseCase"] = fmt.Errorf("failed to get membership repository for authorization use case: %w", err)
			return
		}
		c.authorizationUseCase = membershipUsecase.NewMembershipAuthorizationUseCase(membershipRepo)
	})
	if storedErr, exists := c.initErrors["authorizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.authorizationUseCase, nil
}
