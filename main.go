package main

import (
	"time"

	"payments-app/config"
	"payments-app/database"
	adminapi "payments-app/internal/api/admin"
	"payments-app/internal/api/payment"
	siteapi "payments-app/internal/api/site"
	routes "payments-app/internal/app/http"
	"payments-app/internal/infra/mailer"
	"payments-app/internal/infra/stripegw"
	"payments-app/internal/logging"
	"payments-app/internal/reconciler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	log := logging.New()
	defer log.Sync()

	config.LoadEnv(log)
	db := database.Init(log)

	gw := stripegw.New(config.STRIPE_SECRET_KEY, config.STRIPE_WEBHOOK_SECRET)
	mail := mailer.New(log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Payments: payment.NewHandler(db, gw, mail, log),
		Site:     siteapi.NewHandler(db, mail, log),
		Admin:    adminapi.NewHandler(db, log),
	})

	rec := reconciler.New(db, gw, log)
	rec.Start()
	defer rec.Stop()

	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal("Server exited", zap.Error(err))
	}
}
