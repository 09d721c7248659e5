package rest

import (
	"context"
	"net/http"
	"time"

	"simToDec/domain"
	"simToDec/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	InferenceHandler struct {
		validate         *validator.Validate
		inferenceService InferenceService
		timeout          time.Duration
	}

	InferenceService interface {
		InferLive(ctx context.Context, req domain.ShipmentRequest) (domain.InferenceResult, error)
		ModelInfo() domain.ModelInfo
	}

	InferLiveRequest struct {
		// only absent fields fail "required"; odd values are passed through
		OrderCity        *string  `json:"order_city" validate:"required"`
		OrderCountry     *string  `json:"order_country" validate:"required"`
		CustomerCity     *string  `json:"customer_city" validate:"required"`
		CustomerCountry  *string  `json:"customer_country" validate:"required"`
		SalesPerCustomer *float64 `json:"sales_per_customer" validate:"required"`
		Lat              *float64 `json:"lat"`
		Lon              *float64 `json:"lon"`
	}
)

// worst case: two geocodes, one matrix, weather and fuel calls back to back
const inferLiveTimeout = 45 * time.Second

func NewInferenceHandler(svc InferenceService, validate *validator.Validate) *InferenceHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &InferenceHandler{
		validate:         validate,
		inferenceService: svc,
		timeout:          inferLiveTimeout,
	}
}

// POST /infer_live
func (h *InferenceHandler) InferLive(c echo.Context) error {
	var req InferLiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.inferenceService.InferLive(ctx, domain.ShipmentRequest{
		OrderCity:        *req.OrderCity,
		OrderCountry:     *req.OrderCountry,
		CustomerCity:     *req.CustomerCity,
		CustomerCountry:  *req.CustomerCountry,
		SalesPerCustomer: *req.SalesPerCustomer,
		Lat:              req.Lat,
		Lon:              req.Lon,
	})
	if err != nil {
		logger.Error("Failed to run live inference", "trace_id", logger.TraceIDFromContext(ctx), "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// GET /health
func (h *InferenceHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// GET /modes
func (h *InferenceHandler) Modes(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.inferenceService.ModelInfo()))
}
