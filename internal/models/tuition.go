package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tuition status constants. Status is derived from total and paid amounts
// and is only ever written by the ledger state machine.
const (
	TuitionStatusUnpaid  = "Unpaid"
	TuitionStatusPartial = "Partial"
	TuitionStatusPaid    = "Paid"
)

// Tuition is the running balance of one student for one term.
type Tuition struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	StudentID   uint            `gorm:"not null;uniqueIndex:idx_tuitions_student_term" json:"student_id"`
	Term        string          `gorm:"size:64;not null;uniqueIndex:idx_tuitions_student_term;index" json:"term"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	Status      string          `gorm:"size:16;not null;default:Unpaid;index" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Associations
	Student  *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Payments []Payment `gorm:"foreignKey:TuitionID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// TableName specifies the table name for Tuition
func (Tuition) TableName() string {
	return "tuitions"
}

// Balance is what is still owed. Negative when the student overpaid.
func (t *Tuition) Balance() decimal.Decimal {
	return t.TotalAmount.Sub(t.PaidAmount)
}

// TermBalanceResponse is one row of a student's tuition listing.
type TermBalanceResponse struct {
	Term         string          `json:"term"`
	TuitionTotal decimal.Decimal `json:"tuition_total"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Balance      decimal.Decimal `json:"balance"`
	Status       string          `json:"status"`
}

// ToTermBalance converts Tuition to TermBalanceResponse
func (t *Tuition) ToTermBalance() TermBalanceResponse {
	return TermBalanceResponse{
		Term:         t.Term,
		TuitionTotal: t.TotalAmount,
		PaidAmount:   t.PaidAmount,
		Balance:      t.Balance(),
		Status:       t.Status,
	}
}

// UnpaidStudentResponse is one row of the unpaid report. Student must be preloaded.
type UnpaidStudentResponse struct {
	StudentNo    string          `json:"student_no"`
	Name         string          `json:"name"`
	TuitionTotal decimal.Decimal `json:"tuition_total"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Balance      decimal.Decimal `json:"balance"`
	Status       string          `json:"status"`
}

// ToUnpaidStudent converts Tuition to UnpaidStudentResponse
func (t *Tuition) ToUnpaidStudent() UnpaidStudentResponse {
	resp := UnpaidStudentResponse{
		TuitionTotal: t.TotalAmount,
		PaidAmount:   t.PaidAmount,
		Balance:      t.Balance(),
		Status:       t.Status,
	}
	if t.Student != nil {
		resp.StudentNo = t.Student.StudentNo
		resp.Name = t.Student.Name
	}
	return resp
}
