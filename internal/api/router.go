package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tenantscore/rental-admin/internal/api/handler"
	"github.com/tenantscore/rental-admin/internal/api/middleware"
	"github.com/tenantscore/rental-admin/internal/core/domain"
	"github.com/tenantscore/rental-admin/internal/core/ports"
	"github.com/tenantscore/rental-admin/internal/core/token"
)

// Deps carries the constructed collaborators the router wires together.
type Deps struct {
	Users      ports.UserService
	Properties ports.PropertyService
	Tokens     *token.Service
	Mongo      *mongo.Database
	Redis      *redis.Client
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	userHandler := handler.NewUserHandler(deps.Users)
	propertyHandler := handler.NewPropertyHandler(deps.Properties)

	authenticate := middleware.Authenticate(deps.Tokens)
	authenticated := middleware.RequireAuthenticated()
	adminOnly := middleware.RequireAdmin()
	landlordOnly := middleware.RequireRole(domain.RoleLandlord)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/register", userHandler.Register, authenticate, authenticated, adminOnly)
	users.POST("/login", userHandler.Login)
	users.PUT("/:userId/change-password", userHandler.UpdatePassword,
		authenticate, authenticated, middleware.RequireAccountOwner("userId"))
	users.POST("/set-new-password", userHandler.ForcePasswordChange)

	// --- Property routes ---
	properties := e.Group("/properties", authenticate, authenticated)
	properties.POST("", propertyHandler.Create, landlordOnly)
	properties.GET("", propertyHandler.List)
	properties.GET("/mine", propertyHandler.ListMine, landlordOnly)
	properties.GET("/:id", propertyHandler.Get)
	properties.PUT("/:id", propertyHandler.Update, landlordOnly)
	properties.DELETE("/:id", propertyHandler.Delete, landlordOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
