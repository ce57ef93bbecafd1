package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/auth"
	"github.com/sweetshop/inventory-service/internal/ledger"
	"github.com/sweetshop/inventory-service/internal/ledger/dto"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

type LedgerHandler struct {
	uc     ledger.UseCase
	logger *zap.Logger
}

func NewLedgerHandler(uc ledger.UseCase, log *zap.Logger) *LedgerHandler {
	return &LedgerHandler{uc: uc, logger: log}
}

type logStockChangeRequest struct {
	ProductID string  `json:"productId"`
	Type      string  `json:"type"`
	Quantity  *int    `json:"quantity"`
	Reason    *string `json:"reason"`
}

// LogStockChange handles POST /inventory/log.
func (h *LedgerHandler) LogStockChange(c *gin.Context) {
	var req logStockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			apperrors.NewInvalidArgument("request body must be valid JSON", ""))
		return
	}
	if req.ProductID == "" || req.Type == "" || req.Quantity == nil {
		c.JSON(http.StatusBadRequest,
			apperrors.NewInvalidArgument("productId, type, and quantity are required", ""))
		return
	}

	identity, _ := auth.GetIdentity(c)

	input := &dto.StockChangeInput{
		ProductID:     req.ProductID,
		OperationType: req.Type,
		Quantity:      *req.Quantity,
		Reason:        req.Reason,
		ActorID:       identity.ActorID,
	}

	entry, err := h.uc.ApplyStockChange(c.Request.Context(), input)
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
