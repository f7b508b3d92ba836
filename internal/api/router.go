package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/beatbridge/beatbridge-api/internal/api/handler"
	"github.com/beatbridge/beatbridge-api/internal/api/middleware"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
	"github.com/beatbridge/beatbridge-api/internal/core/service"
	"github.com/beatbridge/beatbridge-api/internal/core/token"
	mongodb "github.com/beatbridge/beatbridge-api/internal/infrastructure/db/mongo"
	redisdb "github.com/beatbridge/beatbridge-api/internal/infrastructure/db/redis"
	"github.com/beatbridge/beatbridge-api/internal/infrastructure/identity"
	"github.com/beatbridge/beatbridge-api/internal/infrastructure/lastfm"
	"github.com/beatbridge/beatbridge-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with every route registered. The
// notifier may be nil when SMTP is not configured.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("beatbridge"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	favorites := mongodb.NewFavoriteRepository(db)
	jams := mongodb.NewJamSessionRepository(db)
	customizations := mongodb.NewCustomizationRepository(db)
	tickets := redisdb.NewResetTicketStore(rdb, cfg.ResetTicketTTL)
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	provider := identity.NewGoogleProvider(identity.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})
	trackSource := lastfm.NewClient(cfg.LastFM.APIKey)

	authService := service.NewAuthService(users, tickets, tokens, notifier, cfg.AutoVerifyFallback, log)
	federatedService := service.NewFederatedService(users, tokens, provider, log)
	favoriteService := service.NewFavoriteService(favorites)
	jamService := service.NewJamSessionService(jams)
	customizationService := service.NewCustomizationService(customizations)
	recommendService := service.NewRecommendService(customizations, trackSource, log)

	authHandler := handler.NewAuthHandler(authService)
	googleHandler := handler.NewGoogleHandler(federatedService, cfg.FrontendURL)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	jamHandler := handler.NewJamHandler(jamService)
	customizationHandler := handler.NewCustomizationHandler(customizationService)
	recommendHandler := handler.NewRecommendHandler(recommendService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// authenticated requires a valid token; verified additionally requires
	// a confirmed email address.
	authenticated := middleware.Auth(tokens, users, false)
	verified := middleware.Auth(tokens, users, true)

	// --- Public routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/verify-email", authHandler.VerifyEmail)
	e.POST("/api/forgot-password", authHandler.ForgotPassword)
	e.POST("/api/verify-otp", authHandler.VerifyOTP)
	e.POST("/api/reset-password", authHandler.ResetPassword)
	e.GET("/api/google-login", googleHandler.Begin)
	e.GET("/api/google-login/callback", googleHandler.Callback)
	e.GET("/api/genres", recommendHandler.Genres)
	e.GET("/api/jam-sessions/explore", jamHandler.Explore)
	e.GET("/api/jam-sessions/:id", jamHandler.Get)

	// --- Authenticated routes ---
	e.GET("/api/user", authHandler.CurrentUser, authenticated)
	e.POST("/api/set-password", authHandler.SetPassword, verified)

	// --- Verified-only routes ---
	e.POST("/api/recommend-song", recommendHandler.Recommend, verified)
	e.GET("/api/favorites", favoriteHandler.List, verified)
	e.POST("/api/favorites", favoriteHandler.Add, verified)
	e.DELETE("/api/favorites/:id", favoriteHandler.Remove, verified)
	e.GET("/api/jam-sessions", jamHandler.ListMine, verified)
	e.POST("/api/jam-sessions", jamHandler.Create, verified)
	e.PUT("/api/jam-sessions/:id", jamHandler.Update, verified)
	e.DELETE("/api/jam-sessions/:id", jamHandler.Delete, verified)
	e.POST("/api/save-customization", customizationHandler.Save, verified)
	e.GET("/api/get-customization", customizationHandler.Get, verified)
	e.GET("/api/chapter-progress", customizationHandler.Progress, verified)
	e.POST("/api/chapter-progress", customizationHandler.AdvanceProgress, verified)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
