package server

import (
	"net/http"
	"time"

	"hive2mqtt/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/devices", s.DevicesHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metricsRegistry, promhttp.HandlerOpts{})))

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.State == "reauth_required" {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL (re-auth required)")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

func (s *Server) DevicesHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.hiveActor, domain.GetDevicesRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, err.Error())
	}
	response, ok := res.(domain.GetDevicesResponse)
	if !ok || response.HasResponseError() {
		return c.String(http.StatusServiceUnavailable, "devices unavailable")
	}
	return c.JSON(http.StatusOK, response.Devices)
}
