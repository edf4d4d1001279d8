package auth

import (
	stdErrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keilahoriye/tilapiasuprememobile/api/response"
	"github.com/keilahoriye/tilapiasuprememobile/application/backend"
	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
)

// MsgInvalidLogin the 401 text of a rejected login
const MsgInvalidLogin = "E-mail ou senha inválidos!"

// Controller login endpoint
type Controller struct {
	authService *backend.AuthService
}

// NewController creates the auth controller
func NewController(authService *backend.AuthService) *Controller {
	return &Controller{authService: authService}
}

// RegisterRoutes registers the auth routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/login", c.Login)
}

// Login POST /auth/login
//
// A rejected login answers 401 with {"error": MsgInvalidLogin}; every other
// failure uses the regular error body.
func (c *Controller) Login(ctx *gin.Context) {
	var req backend.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	u, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		if stdErrors.Is(err, user.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, response.LoginError{Error: MsgInvalidLogin})
			return
		}
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, u, "login successful")
}
