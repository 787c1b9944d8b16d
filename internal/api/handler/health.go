package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the client process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Checks that the consultation service is reachable, and the credential
// backend when it is Redis, before declaring the client ready.
type ReadinessHandler struct {
	serviceURL string
	http       *http.Client
	redis      *redis.Client // nil when the file backend is in use
}

func NewReadinessHandler(serviceURL string, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{
		serviceURL: serviceURL,
		http:       &http.Client{Timeout: 3 * time.Second},
		redis:      rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- consultation service reachable ---
	// Any HTTP answer proves reachability; the status code does not matter.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.serviceURL, nil)
	if err == nil {
		var res *http.Response
		res, err = h.http.Do(req)
		if err == nil {
			res.Body.Close()
		}
	}
	if err != nil {
		deps["consultation_service"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["consultation_service"] = dependencyStatus{Status: "ok"}
	}

	// --- redis credential backend ---
	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
