package usecase

import (
	"github.com/novapay/paycore/internal/pkg/models"
	"github.com/novapay/paycore/services/payments"
)

type PaymentUC struct {
	ledgerRepo payments.LedgerRepo
	idemRepo   payments.IdempotencyRepo
	eventRepo  payments.EventRepo
	gateway    payments.GatewayClient
	PaymentGW  payments.PaymentGW
	cfg        *models.Config
}

// NewPaymentUC creates a new payment usecase instance
func NewPaymentUC(
	ledgerRepo payments.LedgerRepo,
	idemRepo payments.IdempotencyRepo,
	eventRepo payments.EventRepo,
	gateway payments.GatewayClient,
	paymentGW payments.PaymentGW,
	cfg *models.Config,
) *PaymentUC {
	return &PaymentUC{
		ledgerRepo: ledgerRepo,
		idemRepo:   idemRepo,
		eventRepo:  eventRepo,
		gateway:    gateway,
		PaymentGW:  paymentGW,
		cfg:        cfg,
	}
}
