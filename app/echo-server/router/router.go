package router

import (
	"simToDec/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupInferenceRoutes(e *echo.Echo, handler *rest.InferenceHandler) {
	e.POST("/infer_live", handler.InferLive)
	e.GET("/health", handler.Health)
	e.GET("/modes", handler.Modes)
}

func SetupMetricsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
