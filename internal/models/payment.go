package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatusSuccessful is the only status a recorded payment carries.
const PaymentStatusSuccessful = "Successful"

// Payment is an append-only record feeding a tuition's paid amount.
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	TuitionID uint            `gorm:"not null;index" json:"tuition_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reference string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	Status    string          `gorm:"size:16;not null;default:Successful" json:"status"`
	PaidAt    time.Time       `gorm:"not null;index" json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
