package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorturl-service/internal/metrics"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
	storeHealthy   = "healthy"
	storeUnhealthy = "unhealthy"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health and metrics operations.
type Handler struct {
	store    Checker
	reporter *metrics.Reporter
	now      func() time.Time
}

// NewHandler creates a new health handler.
func NewHandler(store Checker, reporter *metrics.Reporter) *Handler {
	return &Handler{
		store:    store,
		reporter: reporter,
		now:      time.Now,
	}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status    string `doc:"healthy, or degraded when the store is unreachable" json:"status"`
		Timestamp int64  `doc:"Unix seconds"                                        json:"timestamp"`
		Store     string `doc:"Result of pinging the store"                        json:"store"`
	}
}

// MetricsResponse is the response for the metrics endpoint.
type MetricsResponse struct {
	Body struct {
		UptimeSeconds     uint64  `json:"uptime_seconds"`
		MemoryUsageMB     uint64  `json:"memory_usage_mb"`
		CPUUsagePercent   float64 `json:"cpu_usage_percent"`
		TotalRequests     uint64  `json:"total_requests"`
		RequestsPerMinute float64 `json:"requests_per_minute"`
	}
}

// Check performs a health check of the application and its store.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = statusHealthy
	resp.Body.Timestamp = h.now().Unix()

	if err := h.store.Ping(ctx); err != nil {
		resp.Body.Store = storeUnhealthy
		resp.Body.Status = statusDegraded
	} else {
		resp.Body.Store = storeHealthy
	}

	return resp, nil
}

// Metrics counts the call and reports the current figures.
func (h *Handler) Metrics(_ context.Context, _ *struct{}) (*MetricsResponse, error) {
	h.reporter.RecordRequest()
	snap := h.reporter.Snapshot()

	resp := &MetricsResponse{}
	resp.Body.UptimeSeconds = snap.UptimeSeconds
	resp.Body.MemoryUsageMB = snap.MemoryUsageMB
	resp.Body.CPUUsagePercent = snap.CPUUsagePercent
	resp.Body.TotalRequests = snap.TotalRequests
	resp.Body.RequestsPerMinute = snap.RequestsPerMinute

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
	huma.Get(api, "/metrics", h.Metrics)
}
