package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is anything the health check can probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type QueueStatus interface {
	Healthy() bool
}

type HealthHandler struct {
	DB        Pinger
	RabbitMQ  QueueStatus
	Version   string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, rabbitMQ QueueStatus, version string) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		Version:   version,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	// Database é obrigatório
	status := "healthy"
	if err := h.DB.PingContext(ctx); err != nil {
		deps["database"] = "unhealthy: " + err.Error()
		status = "degraded"
	} else {
		deps["database"] = "healthy"
	}

	// RabbitMQ é opcional; sem ele o sweeper não publica
	switch {
	case h.RabbitMQ == nil:
		deps["rabbitmq"] = "not configured"
	case h.RabbitMQ.Healthy():
		deps["rabbitmq"] = "healthy"
	default:
		deps["rabbitmq"] = "unhealthy: connection closed"
		status = "degraded"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
