package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/auth"
	"github.com/sweetshop/inventory-service/internal/ledger/dto"
	"github.com/sweetshop/inventory-service/internal/model"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) ApplyStockChange(ctx context.Context, input *dto.StockChangeInput) (*dto.LogEntryResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LogEntryResponse), args.Error(1)
}

func setupRouter(uc *MockUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		auth.SetIdentity(c, auth.Identity{ActorID: "admin-1", Role: auth.RoleAdmin})
	})
	h := NewLedgerHandler(uc, zap.NewNop())
	router.POST("/api/v1/inventory/log", h.LogStockChange)
	return router
}

func postJSON(router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/inventory/log", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogStockChange_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("ApplyStockChange", mock.Anything, mock.MatchedBy(func(in *dto.StockChangeInput) bool {
		return in.ProductID == "p1" && in.OperationType == model.OperationRestock &&
			in.Quantity == 25 && in.ActorID == "admin-1"
	})).Return(&dto.LogEntryResponse{
		ID:             "log-1",
		ProductID:      "p1",
		Type:           model.OperationRestock,
		Quantity:       25,
		ResultingStock: 75,
	}, nil)

	router := setupRouter(uc)
	w := postJSON(router, gin.H{"productId": "p1", "type": "RESTOCK", "quantity": 25})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.LogEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 75, resp.ResultingStock)
	uc.AssertExpectations(t)
}

func TestLogStockChange_MissingFields(t *testing.T) {
	uc := new(MockUseCase)
	router := setupRouter(uc)

	cases := []gin.H{
		{},
		{"productId": "p1"},
		{"productId": "p1", "type": "SALE"},
		{"type": "SALE", "quantity": 1},
	}
	for _, body := range cases {
		w := postJSON(router, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	uc.AssertNotCalled(t, "ApplyStockChange")
}

func TestLogStockChange_UnknownProduct(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("ApplyStockChange", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewNotFound("Product not found"))

	router := setupRouter(uc)
	w := postJSON(router, gin.H{"productId": "ghost", "type": "SALE", "quantity": 1})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogStockChange_InsufficientStock(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("ApplyStockChange", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewInsufficientStock(50, 100))

	router := setupRouter(uc)
	w := postJSON(router, gin.H{"productId": "p1", "type": "SALE", "quantity": 100})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Available: 50, Requested: 100")
}
