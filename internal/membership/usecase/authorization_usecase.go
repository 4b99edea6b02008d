// Package usecase implements conversation authorization decisions.
package usecase

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/allisson/devsync/internal/errors"
	"github.com/allisson/devsync/internal/membership/domain"
)

// AuthorizationUseCase answers per-conversation capability questions.
// Every answer is computed from the membership store at request time; there is
// no cached or session-scoped authorization state.
type AuthorizationUseCase interface {
	// RequireRole reports whether the user holds at least minRole on the
	// conversation. An absent membership is false, not an error.
	RequireRole(ctx context.Context, conversationID, userID uuid.UUID, minRole domain.Role) (bool, error)

	// IsAdmin reports whether the user's membership role is ADMIN.
	IsAdmin(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)

	// IsMember reports whether the user has any membership on the conversation.
	IsMember(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)
}

// MembershipRepository defines the membership lookup the usecase depends on.
type MembershipRepository interface {
	Get(ctx context.Context, conversationID, userID uuid.UUID) (*domain.Membership, error)
}

// MembershipAuthorizationUseCase implements AuthorizationUseCase against a
// membership repository.
type MembershipAuthorizationUseCase struct {
	membershipRepo MembershipRepository
}

// NewMembershipAuthorizationUseCase creates a new MembershipAuthorizationUseCase.
func NewMembershipAuthorizationUseCase(membershipRepo MembershipRepository) AuthorizationUseCase {
	return &MembershipAuthorizationUseCase{
		membershipRepo: membershipRepo,
	}
}

// RequireRole looks up the membership and applies the role ordering.
func (uc *MembershipAuthorizationUseCase) RequireRole(
	ctx context.Context,
	conversationID, userID uuid.UUID,
	minRole domain.Role,
) (bool, error) {
	membership, err := uc.membershipRepo.Get(ctx, conversationID, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return membership.Role.Meets(minRole), nil
}

// IsAdmin reports whether the membership role is exactly ADMIN.
func (uc *MembershipAuthorizationUseCase) IsAdmin(ctx context.Context, conversationID, userID uuid.UUID) (bool, error) {
	return uc.RequireRole(ctx, conversationID, userID, domain.RoleAdmin)
}

// IsMember reports whether any membership exists, regardless of role.
func (uc *MembershipAuthorizationUseCase) IsMember(ctx context.Context, conversationID, userID uuid.UUID) (bool, error) {
	return uc.RequireRole(ctx, conversationID, userID, domain.RoleGuest)
}
