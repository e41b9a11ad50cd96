// Package healthcheck provides health and readiness check functionality
// following the Health Check API pattern for cloud-native applications
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check represents one dependency check result
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration_ms"`
}

// Response represents the aggregate health check response
type Response struct {
	Status        Status        `json:"status"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        []Check       `json:"checks"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// Checker defines the interface for a single dependency check
type Checker interface {
	Check(ctx context.Context) Check
}

// CheckFunc adapts a function to the Checker interface. The function
// returns nil when the dependency is reachable.
type CheckFunc struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Check implements Checker
func (c CheckFunc) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:        c.Name,
		Status:      StatusHealthy,
		LastChecked: start,
	}
	if err := c.Fn(ctx); err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}
	check.Duration = time.Since(start) / time.Millisecond
	return check
}

// HealthCheck manages registered dependency checks. Responses are cached
// briefly so that probe storms do not hammer the dependencies.
type HealthCheck struct {
	version  string
	logger   *zap.Logger
	mu       sync.RWMutex
	checkers map[string]Checker
	cache    *Response
	cachedAt time.Time
	cacheTTL time.Duration
}

// New creates a new health check instance
func New(version string, logger *zap.Logger) *HealthCheck {
	return &HealthCheck{
		version:  version,
		logger:   logger,
		checkers: make(map[string]Checker),
		cacheTTL: 5 * time.Second,
	}
}

// Register registers a named dependency checker
func (h *HealthCheck) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// Check runs all registered checkers and aggregates their status: any
// unhealthy check degrades the aggregate, all unhealthy marks it unhealthy.
func (h *HealthCheck) Check(ctx context.Context) Response {
	h.mu.RLock()
	if h.cache != nil && time.Since(h.cachedAt) < h.cacheTTL {
		cached := *h.cache
		h.mu.RUnlock()
		return cached
	}
	checkers := make(map[string]Checker, len(h.checkers))
	for name, c := range h.checkers {
		checkers[name] = c
	}
	h.mu.RUnlock()

	start := time.Now()
	response := Response{
		Status:    StatusHealthy,
		Version:   h.version,
		Timestamp: start,
		Checks:    make([]Check, 0, len(checkers)),
	}

	unhealthy := 0
	for name, checker := range checkers {
		check := checker.Check(ctx)
		if check.Status == StatusUnhealthy {
			unhealthy++
			h.logger.Warn("health check failed",
				zap.String("check", name),
				zap.String("message", check.Message),
			)
		}
		response.Checks = append(response.Checks, check)
	}
	switch {
	case unhealthy == 0:
	case unhealthy == len(checkers):
		response.Status = StatusUnhealthy
	default:
		response.Status = StatusDegraded
	}
	response.TotalDuration = time.Since(start) / time.Millisecond

	h.mu.Lock()
	h.cache = &response
	h.cachedAt = time.Now()
	h.mu.Unlock()
	return response
}

// Handler returns the HTTP handler for the health endpoint
func (h *HealthCheck) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Check(r.Context())

		statusCode := http.StatusOK
		if response.Status == StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(response)
	}
}
