package models

import (
	"time"
)

// AuditLog records who changed a ledger and how.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Actor     string    `gorm:"size:64;not null;index" json:"actor"`  // username, or "bank" for payment submissions
	Action    string    `gorm:"size:50;not null" json:"action"`       // CREATE, UPDATE, DELETE, IMPORT, PAYMENT
	Entity    string    `gorm:"size:50;not null" json:"entity"`       // Tuition, Payment
	EntityKey string    `gorm:"size:128;index" json:"entity_key"`     // student_no/term
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
