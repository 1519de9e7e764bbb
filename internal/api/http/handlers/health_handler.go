package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/persistence"
)

const readinessTimeout = 2 * time.Second

var errNotConfigured = errors.New("not configured")

type readinessCheck struct {
	name string
	ping func(ctx context.Context) error
}

// HealthHandler serves the probe endpoints. Probes are mounted before
// tenant resolution and never depend on an organization.
type HealthHandler struct {
	serviceName string
	version     string
	checks      []readinessCheck
}

// NewHealthHandler wires the probes. Nil backends degrade readiness to 503
// instead of being dereferenced.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks: []readinessCheck{
			{name: "postgres", ping: func(ctx context.Context) error {
				if postgres == nil {
					return errNotConfigured
				}
				return postgres.Ping(ctx)
			}},
			{name: "redis", ping: func(ctx context.Context) error {
				if redis == nil {
					return errNotConfigured
				}
				return redis.Ping(ctx)
			}},
		},
	}
}

// Live answers as long as the process serves requests.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings every backend within a shared deadline and reports each one.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	dependencies := fiber.Map{}
	ready := true
	for _, check := range h.checks {
		if err := check.ping(ctx); err != nil {
			dependencies[check.name] = err.Error()
			ready = false
			continue
		}
		dependencies[check.name] = "ok"
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": dependencies,
			},
		})
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": dependencies,
	})
}
