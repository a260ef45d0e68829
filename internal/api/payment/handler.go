package payment

import (
	"payments-app/internal/infra/mailer"
	"payments-app/internal/infra/stripegw"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler owns the payment HTTP surface: intent creation, webhook
// ingestion, order query and the cancel/refund/confirm pass-throughs.
type Handler struct {
	db     *gorm.DB
	stripe stripegw.Gateway
	mail   *mailer.Mailer
	log    *zap.Logger
}

func NewHandler(db *gorm.DB, gw stripegw.Gateway, mail *mailer.Mailer, log *zap.Logger) *Handler {
	return &Handler{db: db, stripe: gw, mail: mail, log: log}
}
