// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/devsync/internal/validation"
)

// CreateConversationRequest represents a conversation creation request.
type CreateConversationRequest struct {
	Name string `json:"name"`
}

// Validate validates the conversation creation request.
func (r CreateConversationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
	)
}

// PostMessageRequest represents a message posting request.
type PostMessageRequest struct {
	Content string `json:"content"`
}

// Validate validates the message posting request.
func (r PostMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
			validation.Length(1, 4000).Error("content must be between 1 and 4000 characters"),
		),
	)
}

// ChangeMemberRoleRequest represents a membership role change request.
type ChangeMemberRoleRequest struct {
	Role string `json:"role"`
}

// Validate validates the role change request.
func (r ChangeMemberRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
		),
	)
}

// CreateChannelRequest represents a channel creation request.
type CreateChannelRequest struct {
	Name      string `json:"name"`
	Topic     string `json:"topic"`
	IsPrivate bool   `json:"is_private"`
}

// Validate validates the channel creation request.
func (r CreateChannelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("name must be between 1 and 100 characters"),
		),
		validation.Field(&r.Topic,
			validation.Length(0, 255).Error("topic must be at most 255 characters"),
		),
	)
}
