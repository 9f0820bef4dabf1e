package api

import (
	"RestaurantPOS/internal/api/handlers"
	"RestaurantPOS/pkg/health"
	"RestaurantPOS/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	payment        *handlers.PaymentHandler
	pos            *handlers.POSHandler
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", r.healthRegistry.Live)
	engine.GET("/health/ready", r.healthRegistry.Ready(health.DefaultTimeout))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	engine.POST("/api/paystack/initialize-transaction", r.payment.InitializeTransaction)

	engine.GET("/pos", r.pos.Entry)
	engine.POST("/pos/logout", r.pos.Logout)
}

func NewRouter(
	payment *handlers.PaymentHandler,
	pos *handlers.POSHandler,
	healthRegistry *health.Registry,
) *Router {
	return &Router{
		payment:        payment,
		pos:            pos,
		healthRegistry: healthRegistry,
	}
}
