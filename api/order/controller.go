/*
Package order the order endpoints of the backend fake.

Error handling follows two rules:
 1. A body or query that does not bind answers 400 through response.HandleError.
 2. Service errors go through response.HandleAppError, which maps domain
    errors to their status (order.ErrOrderNotFound becomes 404, an unknown
    product 422, anything unexpected 500).
*/
package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keilahoriye/tilapiasuprememobile/api/response"
	"github.com/keilahoriye/tilapiasuprememobile/application/backend"
)

// Controller order controller
type Controller struct {
	orderService *backend.OrderService
}

// NewController creates the order controller
func NewController(orderService *backend.OrderService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes registers the order routes. The static segments are
// registered alongside :id; gin resolves them first.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/pedidos")
	{
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/buscar", c.SearchOrders)
		orderGroup.POST("/mobile", c.CreateOrder)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.GET("/:id/itens", c.GetOrderItems)
		orderGroup.PUT("/:id", c.UpdateOrder)
		orderGroup.DELETE("/:id", c.DeleteOrder)
	}
}

// ListOrders GET /pedidos
func (c *Controller) ListOrders(ctx *gin.Context) {
	orders, err := c.orderService.ListOrders(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// SearchOrders GET /pedidos/buscar?cliente&telefone&produto&inicio&fim
func (c *Controller) SearchOrders(ctx *gin.Context) {
	var req backend.SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.SearchOrders(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// GetOrder GET /pedidos/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	o, err := c.orderService.GetOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, o, "order retrieved successfully")
}

// GetOrderItems GET /pedidos/:id/itens
func (c *Controller) GetOrderItems(ctx *gin.Context) {
	items, err := c.orderService.GetOrderItems(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "order items retrieved successfully")
}

// CreateOrder POST /pedidos/mobile
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req backend.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orderService.CreateOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, o, "order created successfully")
}

// UpdateOrder PUT /pedidos/:id
func (c *Controller) UpdateOrder(ctx *gin.Context) {
	var req backend.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orderService.UpdateOrder(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, o, "order updated successfully")
}

// DeleteOrder DELETE /pedidos/:id
func (c *Controller) DeleteOrder(ctx *gin.Context) {
	if err := c.orderService.DeleteOrder(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleMessage(ctx, backend.MsgOrderRemoved)
}
