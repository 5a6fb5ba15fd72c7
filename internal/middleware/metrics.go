package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// MailDeliveries counts confirmation mail dispatches by outcome.
	MailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_mail_deliveries_total",
		Help: "Total number of outbound mail dispatches by outcome",
	}, []string{"outcome"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
