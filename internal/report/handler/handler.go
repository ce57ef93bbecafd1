package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/report"
	"github.com/sweetshop/inventory-service/internal/report/dto"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

const defaultThreshold = 10

type ReportHandler struct {
	uc     report.UseCase
	logger *zap.Logger
}

func NewReportHandler(uc report.UseCase, log *zap.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, logger: log}
}

// ListLogs handles GET /inventory/logs.
func (h *ReportHandler) ListLogs(c *gin.Context) {
	filters, err := parseLogFilters(c)
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	result, err := h.uc.ListLogs(c.Request.Context(), filters)
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetReport handles GET /inventory/report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	threshold, err := parseThreshold(c, "lowStockThreshold")
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	result, err := h.uc.GetReport(c.Request.Context(), threshold)
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStockAlerts handles GET /inventory/alerts.
func (h *ReportHandler) GetStockAlerts(c *gin.Context) {
	threshold, err := parseThreshold(c, "threshold")
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	result, err := h.uc.GetStockAlerts(c.Request.Context(), threshold)
	if err != nil {
		appErr := apperrors.As(err)
		c.JSON(appErr.HTTPStatus(), appErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseLogFilters coerces the string-typed query parameters into a typed
// filter before the engine is invoked. Parse failures never reach the store.
func parseLogFilters(c *gin.Context) (*dto.LogFilters, error) {
	f := &dto.LogFilters{
		ProductID:     c.Query("productId"),
		OperationType: c.Query("type"),
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, apperrors.NewInvalidArgument("page must be a positive integer", "page")
		}
		f.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			return nil, apperrors.NewInvalidArgument("limit must be between 1 and 100", "limit")
		}
		f.Limit = limit
	}
	if raw := c.Query("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return nil, apperrors.NewInvalidArgument("startDate must be a valid date", "startDate")
		}
		f.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return nil, apperrors.NewInvalidArgument("endDate must be a valid date", "endDate")
		}
		f.EndDate = &t
	}

	return f, nil
}

func parseThreshold(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultThreshold, nil
	}
	threshold, err := strconv.Atoi(raw)
	if err != nil || threshold < 0 {
		return 0, apperrors.NewInvalidArgument(name+" must be a non-negative integer", name)
	}
	return threshold, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
