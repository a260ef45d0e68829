package routes

import (
	adminapi "payments-app/internal/api/admin"
	"payments-app/internal/api/payment"
	siteapi "payments-app/internal/api/site"
	"payments-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Payments *payment.Handler
	Site     *siteapi.Handler
	Admin    *adminapi.Handler
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	// Webhook stays outside the sanitize group: signature verification
	// needs the raw, unparsed body.
	r.POST("/payment/webhook", deps.Payments.Webhook)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/payment/order/:id", deps.Payments.GetOrder)
	r.GET("/services", deps.Site.ListServices)
	r.GET("/services/:slug", deps.Site.GetService)
	r.GET("/testimonials", deps.Site.ListTestimonials)
	r.GET("/faqs", deps.Site.ListFAQs)
	r.GET("/homepage", deps.Site.GetHomepage)

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())
	public.POST("/payment/create-intent", deps.Payments.CreateIntent)
	public.POST("/payment/confirm", deps.Payments.Confirm)
	public.POST("/contact", deps.Site.SubmitContact)
	public.POST("/admin/login", deps.Admin.Login)

	// Operator-only
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/orders", deps.Admin.ListOrders)
	admin.GET("/contact-submissions", deps.Admin.ListContactSubmissions)
	admin.GET("/stats", deps.Admin.Stats)

	ops := r.Group("/payment")
	ops.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	ops.POST("/cancel", deps.Payments.Cancel)
	ops.POST("/refund", deps.Payments.Refund)
}
