package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keilahoriye/tilapiasuprememobile/api/middleware"
	"github.com/keilahoriye/tilapiasuprememobile/config"
)

// BasePath the prefix every endpoint of the order API lives under
const BasePath = "/api"

// ControllerRegister a controller that registers its own routes
type ControllerRegister interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// Router Route configuration
type Router struct {
	engine      *gin.Engine
	config      *config.Config
	controllers []ControllerRegister
}

// RouterOption customizes the router
type RouterOption func(*routerOptions)

type routerOptions struct {
	envelope bool
}

// WithEnvelope wraps every success body in response.Response
func WithEnvelope() RouterOption {
	return func(o *routerOptions) {
		o.envelope = true
	}
}

// SetMode sets the gin mode for the environment
func SetMode(cfg *config.Config) {
	switch {
	case cfg.IsDevelopment():
		gin.SetMode(gin.DebugMode)
	case cfg.App.Env == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}

// NewRouter creates the engine with the middleware chain. Order matters:
// the request id comes first so everything after it can log it.
func NewRouter(cfg *config.Config, controllers []ControllerRegister, opts ...RouterOption) *Router {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))
	engine.Use(middleware.EnvelopeMiddleware(o.envelope))

	return &Router{
		engine:      engine,
		config:      cfg,
		controllers: controllers,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group(BasePath)
	for _, c := range r.controllers {
		c.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"api":     BasePath,
			"health":  BasePath + "/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
