package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/novapay/paycore/internal/pkg/database"
	"github.com/novapay/paycore/internal/pkg/models"
)

// PaymentRepo implements the payments repositories over postgres with
// a redis fast path for idempotency outcomes and event dedup.
type PaymentRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewPaymentRepo creates a new payment repository instance
func NewPaymentRepo(cfg *models.Config, db *sqlx.DB, redisClient *database.RedisClient) *PaymentRepo {
	return &PaymentRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}
