package models

import "time"

// DefaultStudentName is used when a student is created without a name.
const DefaultStudentName = "Unknown"

// Student is identified by an externally assigned student number.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentNo string    `gorm:"size:64;uniqueIndex;not null" json:"student_no"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Tuitions []Tuition `gorm:"foreignKey:StudentID" json:"tuitions,omitempty"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}
