package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/report/dto"
)

// stubUseCase records the arguments the handler passed through after parsing.
type stubUseCase struct {
	filters   *dto.LogFilters
	threshold int
}

func (s *stubUseCase) ListLogs(_ context.Context, f *dto.LogFilters) (*dto.LogListResponse, error) {
	s.filters = f
	return &dto.LogListResponse{
		Logs:       []dto.LogView{},
		Pagination: dto.Pagination{Page: 1, Limit: 20},
	}, nil
}

func (s *stubUseCase) GetReport(_ context.Context, threshold int) (*dto.InventoryReport, error) {
	s.threshold = threshold
	return &dto.InventoryReport{}, nil
}

func (s *stubUseCase) GetStockAlerts(_ context.Context, threshold int) (*dto.AlertsResponse, error) {
	s.threshold = threshold
	return &dto.AlertsResponse{Alerts: []dto.StockAlert{}}, nil
}

func setupRouter(uc *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewReportHandler(uc, zap.NewNop())
	router.GET("/api/v1/inventory/logs", h.ListLogs)
	router.GET("/api/v1/inventory/report", h.GetReport)
	router.GET("/api/v1/inventory/alerts", h.GetStockAlerts)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListLogs_ParsesFilters(t *testing.T) {
	uc := &stubUseCase{}
	router := setupRouter(uc)

	w := get(router, "/api/v1/inventory/logs?page=2&limit=50&productId=p1&type=SALE&startDate=2025-01-01&endDate=2025-02-01T12:00:00Z")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, uc.filters)
	assert.Equal(t, 2, uc.filters.Page)
	assert.Equal(t, 50, uc.filters.Limit)
	assert.Equal(t, "p1", uc.filters.ProductID)
	assert.Equal(t, "SALE", uc.filters.OperationType)
	require.NotNil(t, uc.filters.StartDate)
	require.NotNil(t, uc.filters.EndDate)
	assert.True(t, uc.filters.EndDate.After(*uc.filters.StartDate))
}

func TestListLogs_InvalidQueryParams(t *testing.T) {
	router := setupRouter(&stubUseCase{})

	paths := []string{
		"/api/v1/inventory/logs?page=0",
		"/api/v1/inventory/logs?page=abc",
		"/api/v1/inventory/logs?limit=0",
		"/api/v1/inventory/logs?limit=101",
		"/api/v1/inventory/logs?startDate=not-a-date",
		"/api/v1/inventory/logs?endDate=31/12/2025",
	}
	for _, path := range paths {
		w := get(router, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetReport_DefaultThreshold(t *testing.T) {
	uc := &stubUseCase{threshold: -99}
	router := setupRouter(uc)

	w := get(router, "/api/v1/inventory/report")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, uc.threshold)
}

func TestGetReport_InvalidThreshold(t *testing.T) {
	router := setupRouter(&stubUseCase{})

	for _, path := range []string{
		"/api/v1/inventory/report?lowStockThreshold=-1",
		"/api/v1/inventory/report?lowStockThreshold=ten",
	} {
		w := get(router, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetStockAlerts_ThresholdParsed(t *testing.T) {
	uc := &stubUseCase{}
	router := setupRouter(uc)

	w := get(router, "/api/v1/inventory/alerts?threshold=25")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, uc.threshold)

	var resp dto.AlertsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Alerts)
}
