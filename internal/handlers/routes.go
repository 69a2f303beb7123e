package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sjperalta/tuition-api/internal/middleware"
	"github.com/sjperalta/tuition-api/internal/models"
)

// RouteOptions carries what the route table needs besides the handlers.
type RouteOptions struct {
	JWTSecret    string
	Admitter     middleware.Admitter
	LoginLimiter *middleware.LimiterStore
}

// SetupRoutes mounts the API on router. Global middleware is the caller's.
func SetupRoutes(router *gin.Engine, h *Handlers, opts RouteOptions) {
	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		v1.POST("/auth/login", middleware.LoginThrottle(opts.LoginLimiter), h.Auth.Login)

		// Mobile lookups are public and limited per student per UTC day
		v1.GET("/mobile/tuition/:studentNo", middleware.Admission(opts.Admitter, "studentNo"), h.Banking.Tuition)

		banking := v1.Group("/banking")
		{
			// Payment notifications from the bank gateway carry no bearer token
			banking.POST("/payment", h.Banking.Pay)
			banking.GET("/tuition/:studentNo",
				middleware.Auth(opts.JWTSecret),
				middleware.RequireRole(models.RoleAdmin, models.RoleBank),
				h.Banking.Tuition)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(opts.JWTSecret), middleware.RequireAdmin())
		{
			admin.POST("/tuition", h.Tuition.Create)
			admin.POST("/tuition/batch", h.Tuition.Batch)
			admin.GET("/tuition/unpaid", h.Tuition.Unpaid)
			admin.GET("/tuition/unpaid/export", h.Tuition.ExportUnpaid)
			admin.PUT("/tuition/:studentNo", h.Tuition.Update)
			admin.DELETE("/tuition/:studentNo", h.Tuition.Delete)

			admin.GET("/audits", h.Audit.Index)
			admin.GET("/jobs/status", h.Job.Status)
			admin.GET("/admission/stats", h.Admission.Stats)
		}
	}
}
