package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	authusecases "chatwarden/internal/application/auth/usecases"
	botusecases "chatwarden/internal/application/bot/usecases"
	chatusecases "chatwarden/internal/application/chat/usecases"
	employeeusecases "chatwarden/internal/application/employee/usecases"
	ownerusecases "chatwarden/internal/application/owner/usecases"
	"chatwarden/internal/infrastructure/auth"
	"chatwarden/internal/infrastructure/config"
	"chatwarden/internal/infrastructure/ratelimit"
	"chatwarden/internal/infrastructure/repository"
	"chatwarden/internal/interfaces/http/handlers"
	"chatwarden/internal/interfaces/http/middleware"
	"chatwarden/internal/shared/logger"

	_ "chatwarden/docs"
)

// Router wires the REST API: repositories, use cases, handlers and
// middleware.
type Router struct {
	engine          *gin.Engine
	authHandler     *handlers.AuthHandler
	ownerHandler    *handlers.OwnerHandler
	botHandler      *handlers.BotHandler
	chatHandler     *handlers.ChatHandler
	employeeHandler *handlers.EmployeeHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     ratelimit.RateLimiter
	cfg             *config.Config
	logger          logger.Interface
}

// NewRouter builds the router and all its dependencies.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	ownerRepo := repository.NewOwnerRepository(db, log)
	botRepo := repository.NewBotRepository(db, log)
	chatRepo := repository.NewChatRepository(db, log)
	employeeRepo := repository.NewEmployeeRepository(db, log)
	linkRepo := repository.NewChatEmployeeRepository(db, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)

	loginUC := authusecases.NewLoginUseCase(ownerRepo, hasher, jwtService, cfg.Auth.Login, log)
	refreshUC := authusecases.NewRefreshTokenUseCase(ownerRepo, jwtService, log)
	profileUC := authusecases.NewGetProfileUseCase(ownerRepo, log)
	changePasswordUC := authusecases.NewChangePasswordUseCase(ownerRepo, hasher, log)

	authHandler := handlers.NewAuthHandler(
		loginUC, refreshUC, profileUC, changePasswordUC,
		cfg.Auth.Cookie, cfg.Auth.JWT, log,
	)

	ownerHandler := handlers.NewOwnerHandler(
		ownerusecases.NewCreateOwnerUseCase(ownerRepo, hasher, log),
		ownerusecases.NewListOwnersUseCase(ownerRepo, log),
		ownerusecases.NewGetOwnerUseCase(ownerRepo, log),
		ownerusecases.NewUpdateOwnerUseCase(ownerRepo, log),
		log,
	)

	botHandler := handlers.NewBotHandler(
		botusecases.NewCreateBotUseCase(botRepo, log),
		botusecases.NewListBotsUseCase(botRepo, log),
		botusecases.NewUpdateBotUseCase(botRepo, log),
		botusecases.NewDeactivateBotUseCase(botRepo, log),
		log,
	)

	chatHandler := handlers.NewChatHandler(
		chatusecases.NewListChatsUseCase(chatRepo, log),
		chatusecases.NewUpdateChatUseCase(chatRepo, log),
		chatusecases.NewListChatMembersUseCase(chatRepo, employeeRepo, linkRepo, log),
		log,
	)

	employeeHandler := handlers.NewEmployeeHandler(
		employeeusecases.NewCreateEmployeeUseCase(employeeRepo, log),
		employeeusecases.NewListEmployeesUseCase(employeeRepo, log),
		employeeusecases.NewUpdateEmployeeUseCase(employeeRepo, log),
		employeeusecases.NewDeactivateEmployeeUseCase(employeeRepo, log),
		log,
	)

	var limiter ratelimit.RateLimiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisRateLimiter(redisClient)
	}

	return &Router{
		engine:          engine,
		authHandler:     authHandler,
		ownerHandler:    ownerHandler,
		botHandler:      botHandler,
		chatHandler:     chatHandler,
		employeeHandler: employeeHandler,
		authMiddleware:  middleware.NewAuthMiddleware(jwtService, log),
		rateLimiter:     limiter,
		cfg:             cfg,
		logger:          log,
	}
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.ErrorHandler())

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	if r.rateLimiter != nil {
		limitCfg := ratelimit.RateLimitConfig{RequestsPerMinute: 10, RequestsPerHour: 100}
		authGroup.Use(middleware.RateLimit(r.rateLimiter, limitCfg, r.logger))
	}
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		authGroup.POST("/password", r.authMiddleware.RequireAuth(), r.authHandler.ChangePassword)
	}

	protected := api.Group("")
	protected.Use(r.authMiddleware.RequireAuth())
	{
		users := protected.Group("/users")
		{
			users.POST("", r.authMiddleware.RequireAdmin(), r.ownerHandler.Create)
			users.GET("", r.authMiddleware.RequireAdmin(), r.ownerHandler.List)
			users.GET("/:id", r.ownerHandler.Get)
			users.PATCH("/:id", r.ownerHandler.Update)
		}

		bots := protected.Group("/bots")
		{
			bots.POST("", r.botHandler.Create)
			bots.GET("", r.botHandler.List)
			bots.PATCH("/:id", r.botHandler.Update)
			bots.DELETE("/:id", r.botHandler.Deactivate)
		}

		chats := protected.Group("/chats")
		{
			chats.GET("", r.chatHandler.List)
			chats.PATCH("/:id", r.chatHandler.Update)
			chats.GET("/:id/employees", r.chatHandler.Members)
		}

		employees := protected.Group("/employees")
		{
			employees.POST("", r.employeeHandler.Create)
			employees.GET("", r.employeeHandler.List)
			employees.PATCH("/:id", r.employeeHandler.Update)
			employees.DELETE("/:id", r.employeeHandler.Deactivate)
		}
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
