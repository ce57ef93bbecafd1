package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/auth"
	"github.com/sweetshop/inventory-service/internal/order"
	"github.com/sweetshop/inventory-service/internal/order/dto"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

type placeOrderRequest struct {
	Items []dto.OrderLine `json:"items"`
}

// PlaceOrder handles POST /orders.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			apperrors.NewInvalidArgument("request body must be valid JSON", ""))
		return
	}

	identity, _ := auth.GetIdentity(c)

	o, err := h.uc.PlaceOrder(c.Request.Context(), &dto.PlaceOrderInput{
		CustomerID: identity.ActorID,
		Items:      req.Items,
	})
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	c.JSON(http.StatusCreated, o)
}

// GetOrders handles GET /orders, returning the caller's own orders.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	identity, _ := auth.GetIdentity(c)

	orders, err := h.uc.GetCustomerOrders(c.Request.Context(), identity.ActorID)
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}
