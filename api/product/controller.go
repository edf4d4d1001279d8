package product

import (
	"github.com/gin-gonic/gin"

	"github.com/keilahoriye/tilapiasuprememobile/api/response"
	"github.com/keilahoriye/tilapiasuprememobile/application/backend"
)

// Controller product catalog endpoint
type Controller struct {
	orderService *backend.OrderService
}

// NewController creates the product controller
func NewController(orderService *backend.OrderService) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes registers the product routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/produtos", c.ListProducts)
}

// ListProducts GET /produtos
func (c *Controller) ListProducts(ctx *gin.Context) {
	products, err := c.orderService.ListProducts(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "products retrieved successfully")
}
