package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/devsync/internal/auth/domain"
	authHTTP "github.com/allisson/devsync/internal/auth/http"
	authUseCase "github.com/allisson/devsync/internal/auth/usecase"
	chatHTTP "github.com/allisson/devsync/internal/chat/http"
	chatUseCase "github.com/allisson/devsync/internal/chat/usecase"
	"github.com/allisson/devsync/internal/config"
	membershipDomain "github.com/allisson/devsync/internal/membership/domain"
	"github.com/allisson/devsync/internal/metrics"
	settingsHTTP "github.com/allisson/devsync/internal/settings/http"
	settingsUseCase "github.com/allisson/devsync/internal/settings/usecase"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	cfg    *config.Config
	db     *sql.DB
	logger *slog.Logger

	authUseCase         authUseCase.AuthUseCase
	conversationUseCase chatUseCase.ConversationUseCase
	channelUseCase      chatUseCase.ChannelUseCase
	settingsUseCase     settingsUseCase.SettingsUseCase
	authorizer          authHTTP.ConversationAuthorizer
	metricsProvider     *metrics.Provider
}

// NewServer creates a new API server with all route dependencies.
// The metrics provider is optional; pass nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
	authUC authUseCase.AuthUseCase,
	conversationUC chatUseCase.ConversationUseCase,
	channelUC chatUseCase.ChannelUseCase,
	settingsUC settingsUseCase.SettingsUseCase,
	authorizer authHTTP.ConversationAuthorizer,
	metricsProvider *metrics.Provider,
) *Server {
	s := &Server{
		cfg:                 cfg,
		db:                  db,
		logger:              logger,
		authUseCase:         authUC,
		conversationUseCase: conversationUC,
		channelUseCase:      channelUC,
		settingsUseCase:     settingsUC,
		authorizer:          authorizer,
		metricsProvider:     metricsProvider,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.setupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRouter builds the gin engine with middleware and all API routes.
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(s.cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.metricsProvider.MeterProvider(), s.cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Token verification runs on every /v1 route; it binds the user when a
	// valid token is present and never aborts on its own.
	v1 := router.Group("/v1")
	v1.Use(authHTTP.AuthenticationMiddleware(s.authUseCase, s.logger))

	s.registerAuthRoutes(v1)
	s.registerConversationRoutes(v1)
	s.registerChannelRoutes(v1)
	s.registerSettingsRoutes(v1)

	return router
}

// registerAuthRoutes wires login, signup, and the current-user endpoint.
// Login and signup are rate limited per client IP.
func (s *Server) registerAuthRoutes(v1 *gin.RouterGroup) {
	handler := authHTTP.NewAuthHandler(s.authUseCase, s.logger)

	public := v1.Group("/auth")
	if s.cfg.RateLimitAuthEnabled {
		public.Use(authHTTP.AuthRateLimitMiddleware(
			s.cfg.RateLimitAuthRequestsPerSec, s.cfg.RateLimitAuthBurst, s.logger,
		))
	}
	public.POST("/login", handler.LoginHandler)
	public.POST("/signup", handler.SignupHandler)

	v1.GET("/auth/me", authHTTP.RequireAuthenticated(s.logger), handler.MeHandler)
}

// protectedGroup returns a route group that requires authentication and
// applies the per-user rate limit.
func (s *Server) protectedGroup(v1 *gin.RouterGroup, path string) *gin.RouterGroup {
	group := v1.Group(path)
	group.Use(authHTTP.RequireAuthenticated(s.logger))
	if s.cfg.RateLimitEnabled {
		group.Use(authHTTP.RateLimitMiddleware(s.cfg.RateLimitRequestsPerSec, s.cfg.RateLimitBurst, s.logger))
	}
	return group
}

// registerConversationRoutes wires conversation, member, and message endpoints.
func (s *Server) registerConversationRoutes(v1 *gin.RouterGroup) {
	handler := chatHTTP.NewConversationHandler(s.conversationUseCase, s.logger)

	memberGate := authHTTP.RequireConversationRole(membershipDomain.RoleMember, s.authorizer, s.logger)
	adminGate := authHTTP.RequireConversationRole(membershipDomain.RoleAdmin, s.authorizer, s.logger)

	conversations := s.protectedGroup(v1, "/conversations")
	conversations.POST("", handler.CreateConversationHandler)
	conversations.GET("", handler.ListConversationsHandler)
	conversations.GET("/:id", memberGate, handler.GetConversationHandler)
	conversations.DELETE("/:id", adminGate, handler.DeleteConversationHandler)
	conversations.POST("/:id/join", handler.JoinConversationHandler)
	conversations.POST("/:id/leave", handler.LeaveConversationHandler)
	conversations.GET("/:id/members", memberGate, handler.ListMembersHandler)
	conversations.PUT("/:id/members/:user_id", adminGate, handler.ChangeMemberRoleHandler)
	conversations.POST("/:id/messages", memberGate, handler.PostMessageHandler)
	conversations.GET("/:id/messages", memberGate, handler.ListMessagesHandler)
}

// registerChannelRoutes wires workspace channel endpoints. Administration
// requires the global ADMIN role.
func (s *Server) registerChannelRoutes(v1 *gin.RouterGroup) {
	handler := chatHTTP.NewChannelHandler(s.channelUseCase, s.logger)

	adminGate := authHTTP.RequireGlobalRole(authDomain.GlobalRoleAdmin, s.logger)

	channels := s.protectedGroup(v1, "/channels")
	channels.GET("", handler.ListChannelsHandler)
	channels.GET("/:id", handler.GetChannelHandler)
	channels.POST("", adminGate, handler.CreateChannelHandler)
	channels.DELETE("/:id", adminGate, handler.DeleteChannelHandler)
}

// registerSettingsRoutes wires the owner-only user settings endpoints.
func (s *Server) registerSettingsRoutes(v1 *gin.RouterGroup) {
	handler := settingsHTTP.NewSettingsHandler(s.settingsUseCase, s.logger)

	users := s.protectedGroup(v1, "/users/:user_id")
	users.POST("/settings", handler.InitializeSettingsHandler)
	users.GET("/settings", handler.GetSettingsHandler)
	users.PUT("/settings/:section", handler.UpdateSectionHandler)
	users.POST("/settings/reset", handler.ResetSettingsHandler)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness, checking the database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
