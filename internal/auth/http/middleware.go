package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authUseCase "github.com/allisson/devsync/internal/auth/usecase"
	apperrors "github.com/allisson/devsync/internal/errors"
	"github.com/allisson/devsync/internal/httputil"
	membershipDomain "github.com/allisson/devsync/internal/membership/domain"
)

// ConversationAuthorizer answers whether a user holds at least the given role
// on a conversation. Implemented by the membership usecase.
type ConversationAuthorizer interface {
	RequireRole(ctx context.Context, conversationID, userID uuid.UUID, minRole membershipDomain.Role) (bool, error)
}

// AuthenticationMiddleware resolves the Bearer token in the Authorization header
// to a user and binds it to the request context.
//
// The middleware never aborts: a missing header, malformed token, failed
// verification, or dead account all leave the request unauthenticated and
// continue down the chain. Route gates (RequireAuthenticated and friends)
// decide whether an unauthenticated request may proceed. Collapsing all token
// failures into the same silent outcome keeps error responses from acting as
// a token-probing oracle.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
func AuthenticationMiddleware(useCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		user, err := useCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("request token rejected",
				slog.String("error", err.Error()))
			c.Next()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("request authenticated",
			slog.String("user_id", user.ID.String()),
			slog.String("username", user.Username))

		c.Next()
	}
}

// extractBearerToken parses the Authorization header value.
// Returns the token and true when the header carries a non-empty bearer token.
func extractBearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) ||
		!strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// RequireAuthenticated aborts with 401 when no user is bound to the request.
// Use on every route that is not explicitly public.
func RequireAuthenticated(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUser(c.Request.Context()); !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireGlobalRole aborts with 403 when the authenticated user does not hold
// the given global role. Aborts with 401 when no user is bound.
func RequireGlobalRole(role string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !user.HasGlobalRole(role) {
			logger.Debug("global role check failed",
				slog.String("user_id", user.ID.String()),
				slog.String("required_role", role))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireConversationRole aborts with 403 when the authenticated user does not
// hold at least minRole on the conversation identified by the :id route param.
// The check runs before the handler, so a rejected request never executes any
// guarded business logic.
func RequireConversationRole(
	minRole membershipDomain.Role,
	authorizer ConversationAuthorizer,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httputil.HandleBadRequestGin(c, apperrors.Wrap(err, "invalid conversation id"), logger)
			c.Abort()
			return
		}

		allowed, err := authorizer.RequireRole(c.Request.Context(), conversationID, user.ID, minRole)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}
		if !allowed {
			logger.Debug("conversation role check failed",
				slog.String("user_id", user.ID.String()),
				slog.String("conversation_id", conversationID.String()),
				slog.String("required_role", string(minRole)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
