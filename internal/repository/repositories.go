package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Tx      Transactor
	User    UserRepository
	Student StudentRepository
	Tuition TuitionRepository
	Payment PaymentRepository
	Audit   AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tx:      NewTransactor(db),
		User:    NewUserRepository(db),
		Student: NewStudentRepository(db),
		Tuition: NewTuitionRepository(db),
		Payment: NewPaymentRepository(db),
		Audit:   NewAuditRepository(db),
	}
}
