package cmd

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/keilahoriye/tilapiasuprememobile/api"
	"github.com/keilahoriye/tilapiasuprememobile/config"
	"github.com/keilahoriye/tilapiasuprememobile/mock"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

// App the backend fake: the order API over an in-memory store
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	store  *mock.Store
}

// Run serves until ctx is done, then shuts down gracefully within
// server.shutdown_timeout
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("api", api.BasePath),
			zap.String("health", api.BasePath+"/health"))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// GetServer returns the gin engine (used by tests)
func (a *App) GetServer() *gin.Engine {
	return a.router.GetEngine()
}

// Store returns the store the app serves
func (a *App) Store() *mock.Store {
	return a.store
}
