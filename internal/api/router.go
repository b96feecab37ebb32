package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nvoss/linkstash/internal/api/handler"
	customMiddleware "github.com/nvoss/linkstash/internal/api/middleware"
	"github.com/nvoss/linkstash/internal/config"
	"github.com/nvoss/linkstash/internal/notify"
	"github.com/nvoss/linkstash/internal/repository/postgres"
	"github.com/nvoss/linkstash/internal/repository/redis"
	"github.com/nvoss/linkstash/internal/security"
	"github.com/nvoss/linkstash/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	folderRepo := postgres.NewFolderRepository(db)
	bookmarkRepo := postgres.NewBookmarkRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)

	// Redis-backed components
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Limits.RateLimit.RequestsPerMinute,
		cfg.Limits.RateLimit.Burst,
	)
	tagCache := redis.NewTagCache(redisClient)

	mailer := notify.NewMailer(cfg.SMTP)

	// Services
	accessService := service.NewAccessService(orgRepo, workspaceRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	orgService := service.NewOrganizationService(orgRepo, workspaceRepo, accessService)
	folderService := service.NewFolderService(folderRepo, workspaceRepo, accessService)
	tagService := service.NewTagService(tagRepo, accessService, tagCache)
	bookmarkService := service.NewBookmarkService(
		bookmarkRepo,
		folderRepo,
		accessService,
		tagService,
		cfg.Limits.DefaultPageSize,
		cfg.Limits.MaxPageSize,
	)
	invitationService := service.NewInvitationService(
		invitationRepo,
		workspaceRepo,
		accessService,
		mailer,
		cfg.Invitations.TTL,
		cfg.Invitations.BaseURL,
	)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	folderHandler := handler.NewFolderHandler(folderService)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)
	tagHandler := handler.NewTagHandler(tagService)
	invitationHandler := handler.NewInvitationHandler(invitationService)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health checks
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/me", authHandler.Me)

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", orgHandler.List)
				r.Post("/", orgHandler.Create)

				r.Route("/{organizationID}", func(r chi.Router) {
					r.Get("/", orgHandler.Get)
					r.Get("/invitations", invitationHandler.ListPending)
				})
			})

			r.Route("/workspaces", func(r chi.Router) {
				r.Get("/", orgHandler.ListWorkspaces)
				r.Get("/{workspaceID}", orgHandler.GetWorkspace)
			})

			r.Route("/invitations", func(r chi.Router) {
				r.Post("/", invitationHandler.Create)
				r.Post("/accept", invitationHandler.Accept)
			})

			r.Route("/folders", func(r chi.Router) {
				r.Get("/", folderHandler.List)
				r.Post("/", folderHandler.Create)
				r.Get("/all", folderHandler.ListAll)
				r.Get("/default", folderHandler.GetDefault)
			})

			r.Route("/bookmarks", func(r chi.Router) {
				r.Get("/", bookmarkHandler.List)
				r.Post("/", bookmarkHandler.Create)

				r.Route("/{bookmarkID}", func(r chi.Router) {
					r.Patch("/", bookmarkHandler.Update)
					r.Post("/archive", bookmarkHandler.Archive)
					r.Post("/restore", bookmarkHandler.Restore)
				})
			})

			r.Get("/tags", tagHandler.List)
		})
	})

	return r
}
