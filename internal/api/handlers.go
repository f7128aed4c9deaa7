package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dalfonso89/auth-currency-gateway/internal/middleware"
	"github.com/dalfonso89/auth-currency-gateway/internal/models"
	"github.com/dalfonso89/auth-currency-gateway/internal/ratelimit"
	"github.com/dalfonso89/auth-currency-gateway/internal/service"
)

// HandlerConfig contains all dependencies for the Handlers
type HandlerConfig struct {
	Logger         *logrus.Logger
	Authenticator  service.PasswordAuthenticator
	UserCreator    service.UserCreator
	TokenVerifier  service.TokenVerifier
	RatesProvider  service.ExchangeRateProvider
	RateLimiter    *ratelimit.Limiter
	AllowedOrigins []string
	TrustedProxies []string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	logger            *logrus.Logger
	authenticator     service.PasswordAuthenticator
	userCreator       service.UserCreator
	tokenVerifier     service.TokenVerifier
	ratesProvider     service.ExchangeRateProvider
	conversionService *service.ConversionService
	rateLimiter       *ratelimit.Limiter
	allowedOrigins    []string
	trustedProxies    []string
}

// NewHandlers creates a new handlers instance with all dependencies
func NewHandlers(config HandlerConfig) *Handlers {
	return &Handlers{
		logger:            config.Logger,
		authenticator:     config.Authenticator,
		userCreator:       config.UserCreator,
		tokenVerifier:     config.TokenVerifier,
		ratesProvider:     config.RatesProvider,
		conversionService: service.NewConversionService(config.RatesProvider, config.Logger),
		rateLimiter:       config.RateLimiter,
		allowedOrigins:    config.AllowedOrigins,
		trustedProxies:    config.TrustedProxies,
	}
}

// SetupRoutes configures all the routes using Gin
func (handlers *Handlers) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// An empty list trusts no proxy, so ClientIP is the peer address
	if err := router.SetTrustedProxies(handlers.trustedProxies); err != nil {
		handlers.logger.Warnf("Ignoring invalid trusted proxies: %v", err)
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(handlers.logger))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(handlers.allowedOrigins))

	// Health check stays outside rate limiting and auth
	router.GET("/health", handlers.HealthCheck)

	limited := router.Group("/")
	if handlers.rateLimiter != nil {
		limited.Use(handlers.rateLimitMiddleware())
	}

	limited.POST("/signup", handlers.Signup)
	limited.POST("/login", handlers.Login)

	protected := limited.Group("/", middleware.RequireBearerToken(handlers.tokenVerifier, handlers.logger))
	{
		protected.GET("/getCurrencyInfo", handlers.GetCurrencyInfo)
		protected.GET("/converterMoeda", handlers.ConvertCurrency)
	}

	return router
}

// HealthCheck handles health check requests
func (handlers *Handlers) HealthCheck(context *gin.Context) {
	context.JSON(http.StatusOK, models.HealthResponse{OK: true})
}

// writeErrorResponse writes an error response using Gin context
func (handlers *Handlers) writeErrorResponse(context *gin.Context, statusCode int, errorMessage string, errorDetails interface{}) {
	context.JSON(statusCode, models.ErrorResponse{
		Error:   errorMessage,
		Details: errorDetails,
	})
}

// logServiceError keeps the structured cause in the logs while the client gets a flat body
func (handlers *Handlers) logServiceError(context *gin.Context, operation string, statusCode int, err error) {
	fields := logrus.Fields{
		"operation":  operation,
		"status":     statusCode,
		"error_type": service.TypeOf(err).String(),
		"error":      err.Error(),
		"request_id": middleware.GetRequestID(context),
	}
	if user, ok := middleware.UserFromContext(context.Request.Context()); ok {
		fields["uid"] = user.UID
	}

	entry := handlers.logger.WithFields(fields)
	if statusCode >= http.StatusInternalServerError {
		entry.Error("Request failed")
		return
	}
	entry.Warn("Request rejected")
}

// rateLimitMiddleware provides rate limiting using Gin middleware
func (handlers *Handlers) rateLimitMiddleware() gin.HandlerFunc {
	return func(context *gin.Context) {
		clientIP := context.ClientIP()

		if !handlers.rateLimiter.Allow(clientIP) {
			handlers.logger.Warnf("Rate limit exceeded for IP: %s", clientIP)
			context.Header("X-RateLimit-Limit", strconv.Itoa(handlers.rateLimiter.Configuration.RateLimitRequests))
			context.Header("X-RateLimit-Remaining", "0")
			context.Header("X-RateLimit-Reset", strconv.FormatInt(handlers.rateLimiter.ResetAt().Unix(), 10))
			context.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "rate limit exceeded"})
			return
		}

		context.Next()
	}
}
