package database

import (
	"payments-app/config"
	"payments-app/internal/domain/orders"
	"payments-app/internal/domain/site"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the Postgres connection and migrates all domain models.
// The returned handle is passed explicitly to every handler; there is no
// package-level DB.
func Init(log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// The unique index on orders.payment_intent_id is what enforces the
	// one-order-per-intent invariant; AutoMigrate creates it.
	if err := db.AutoMigrate(
		&orders.Order{},

		&site.Service{},
		&site.Testimonial{},
		&site.FAQ{},
		&site.Homepage{},
		&site.ContactSubmission{},
	); err != nil {
		log.Fatal("AutoMigrate error", zap.Error(err))
	}

	log.Info("✅ Connected and migrated successfully")
	return db
}
