package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ncsdigital/contact-details-service/internal/api/rest/handlers"
	"github.com/ncsdigital/contact-details-service/internal/api/rest/middleware"
	"github.com/ncsdigital/contact-details-service/internal/metrics"
	"github.com/ncsdigital/contact-details-service/internal/service"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// SetupRouter wires middleware and the contact details routes.
func SetupRouter(svc service.ContactService, contactMetrics metrics.ContactMetrics, registry *prometheus.Registry, log *logger.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.MetricsMiddleware(contactMetrics))
	r.Use(gin.Recovery())

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	contactHandler := handlers.NewContactHandler(svc, log)

	contacts := r.Group("/customers/:customerId/ContactDetails")
	contacts.Use(middleware.RequireTouchpoint(log))
	{
		contacts.GET("", contactHandler.GetContactDetails)
		contacts.GET("/:contactId", contactHandler.GetContactDetailsByID)
		contacts.POST("", contactHandler.CreateContactDetails)
		contacts.PATCH("/:contactId", contactHandler.PatchContactDetails)

		// Declared but intentionally disabled in this revision.
		contacts.PUT("/:contactId", contactHandler.MethodNotSupported)
		contacts.DELETE("/:contactId", contactHandler.MethodNotSupported)
	}

	return r
}
