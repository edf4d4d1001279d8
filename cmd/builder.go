package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/keilahoriye/tilapiasuprememobile/api"
	apiauth "github.com/keilahoriye/tilapiasuprememobile/api/auth"
	"github.com/keilahoriye/tilapiasuprememobile/api/health"
	apiorder "github.com/keilahoriye/tilapiasuprememobile/api/order"
	apiproduct "github.com/keilahoriye/tilapiasuprememobile/api/product"
	"github.com/keilahoriye/tilapiasuprememobile/application/backend"
	"github.com/keilahoriye/tilapiasuprememobile/config"
	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/mock"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

// Route a custom route outside the /api group
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// AppBuilder builds the backend fake with customizable components
type AppBuilder struct {
	cfg          *config.Config
	store        *mock.Store
	controllers  []api.ControllerRegister
	customRoutes []Route
	envelope     bool
	initLogger   bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:        cfg,
		initLogger: true,
	}
}

// WithStore serves an existing store instead of a fresh one seeded from
// the configuration
func (b *AppBuilder) WithStore(s *mock.Store) *AppBuilder {
	b.store = s
	return b
}

// WithController adds a controller to the app
func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// WithRoute adds a custom route
func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// WithEnvelope wraps every success body in the {success, data} envelope
func (b *AppBuilder) WithEnvelope() *AppBuilder {
	b.envelope = true
	return b
}

// KeepLogger leaves the global logger alone, for tests that install their own
func (b *AppBuilder) KeepLogger() *AppBuilder {
	b.initLogger = false
	return b
}

// Build creates the App instance
func (b *AppBuilder) Build() (*App, error) {
	if b.initLogger {
		if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	if b.store == nil {
		store, err := b.initDefaultStore()
		if err != nil {
			return nil, err
		}
		b.store = store
	}

	orderService := backend.NewOrderService(
		b.store.Orders(),
		b.store.Customers(),
		b.store.Products(),
		b.store.UnitOfWork(),
		b.cfg.Location(),
	)
	authService := backend.NewAuthService(b.store.Users())

	controllers := []api.ControllerRegister{
		health.NewController(b.cfg, b.store),
		apiauth.NewController(authService),
		apiproduct.NewController(orderService),
		apiorder.NewController(orderService),
	}
	controllers = append(controllers, b.controllers...)

	api.SetMode(b.cfg)
	var opts []api.RouterOption
	if b.envelope {
		opts = append(opts, api.WithEnvelope())
	}
	router := api.NewRouter(b.cfg, controllers, opts...)
	router.SetupRoutes()
	for _, r := range b.customRoutes {
		router.GetEngine().Handle(r.Method, r.Path, r.Handler)
	}

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		store:  b.store,
	}, nil
}

// initDefaultStore creates the in-memory store with the standard catalog and
// the configured login account
func (b *AppBuilder) initDefaultStore() (*mock.Store, error) {
	logger.Info("Using in-memory persistence layer")

	store := mock.NewStore(catalog.Standard())
	u := b.cfg.Mock.User
	if _, err := store.SeedUser(context.Background(), u.Name, u.Email, u.Password); err != nil {
		return nil, fmt.Errorf("failed to seed user %q: %w", u.Email, err)
	}
	return store, nil
}
