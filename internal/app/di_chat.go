package app

import (
	"fmt"

	chatRepository "github.com/allisson/devsync/internal/chat/repository"
	chatUsecase "github.com/allisson/devsync/internal/chat/usecase"
)

// ConversationRepository returns the conversation repository instance.
func (c *Container) ConversationRepository() (chatUsecase.ConversationRepository, error) {
	c.conversationRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["conversationRepo"] = fmt.Errorf("failed to get database for conversation repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.conversationRepo = chatRepository.NewMySQLConversationRepository(db)
		case "postgres":
			c.conversationRepo = chatRepository.NewPostgreSQLConversationRepository(db)
		default:
			c.initErrors["conversationRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["conversationRepo"]; exists {
		return nil, storedErr
	}
	return c.conversationRepo, nil
}

// MessageRepository returns the message repository instance.
func (c *Container) MessageRepository() (chatUsecase.MessageRepository, error) {
	c.messageRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["messageRepo"] = fmt.Errorf("failed to get database for message repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.messageRepo = chatRepository.NewMySQLMessageRepository(db)
		case "postgres":
			c.messageRepo = chatRepository.NewPostgreSQLMessageRepository(db)
		default:
			c.initErrors["messageRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["messageRepo"]; exists {
		return nil, storedErr
	}
	return c.messageRepo, nil
}

// ChannelRepository returns the channel repository instance.
func (c *Container) ChannelRepository() (chatUsecase.ChannelRepository, error) {
	c.channelRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["channelRepo"] = fmt.Errorf("failed to get database for channel repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.channelRepo = chatRepository.NewMySQLChannelRepository(db)
		case "postgres":
			c.channelRepo = chatRepository.NewPostgreSQLChannelRepository(db)
		default:
			c.initErrors["channelRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["channelRepo"]; exists {
		return nil, storedErr
	}
	return c.channelRepo, nil
}

// ConversationUseCase returns the conversation use case instance.
func (c *Container) ConversationUseCase() (chatUsecase.ConversationUseCase, error) {
	c.conversationUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["conversationUseCase"] = fmt.Errorf("failed to get tx manager for conversation use case: %w", err)
			return
		}

		conversationRepo, err := c.ConversationRepository()
		if err != nil {
			c.initErrors["conversationUseCase"] = fmt.Errorf("failed to get conversation repository for conversation use case: %w", err)
			return
		}

		membershipRepo, err := c.MembershipRepository()
		if err != nil {
			c.initErrors["conversationUseCase"] = fmt.Errorf("failed to get membership repository for conversation use case: %w", err)
			return
		}

		messageRepo, err := c.MessageRepository()
		if err != nil {
			c.initErrors["conversationUseCase"] = fmt.Errorf("failed to get message repository for conversation use case: %w", err)
			return
		}

		useCase := chatUsecase.NewConversationUseCase(txManager, conversationRepo, membershipRepo, messageRepo)

		if c.config.MetricsEnabled {
			bm, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["conversationUseCase"] = fmt.Errorf("failed to get business metrics for conversation use case: %w", err)
				return
			}
			useCase = chatUsecase.NewConversationUseCaseWithMetrics(useCase, bm)
		}

		c.conversationUseCase = useCase
	})
	if storedErr, exists := c.initErrors["conversationUseCase"]; exists {
		return nil, storedErr
	}
	return c.conversationUseCase, nil
}

// ChannelUseCase returns the channel use case instance.
func (c *Container) ChannelUseCase() (chatUsecase.ChannelUseCase, error) {
	c.channelUseCaseInit.Do(func() {
		channelRepo, err := c.ChannelRepository()
		if err != nil {
			c.initErrors["channelUseCase"] = fmt.Errorf("failed to get channel repository for channel use case: %w", err)
			return
		}

		useCase := chatUsecase.NewChannelUseCase(channelRepo)

		if c.config.MetricsEnabled {
			bm, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["channelUseCase"] = fmt.Errorf("failed to get business metrics for channel use case: %w", err)
				return
			}
			useCase = chatUsecase.NewChannelUseCaseWithMetrics(useCase, bm)
		}

		c.channelUseCase = useCase
	})
	if storedErr, exists := c.initErrors["channelUseCase"]; exists {
		return nil, storedErr
	}
	return c.channelUseCase, nil
}
