package repository

import (
	"context"

	"github.com/sjperalta/tuition-api/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByTuition(ctx context.Context, tuitionID uint) ([]models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) FindByTuition(ctx context.Context, tuitionID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := conn(ctx, r.db).
		Where("tuition_id = ?", tuitionID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}
