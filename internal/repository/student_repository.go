package repository

import (
	"context"

	"github.com/sjperalta/tuition-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	FindByStudentNo(ctx context.Context, studentNo string) (*models.Student, error)
	FindOrCreate(ctx context.Context, studentNo, name string) (*models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByStudentNo(ctx context.Context, studentNo string) (*models.Student, error) {
	var student models.Student
	err := conn(ctx, r.db).
		Where("student_no = ?", studentNo).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindOrCreate inserts the student if absent and returns the stored row.
// A concurrent insert of the same student_no is absorbed by ON CONFLICT.
func (r *studentRepository) FindOrCreate(ctx context.Context, studentNo, name string) (*models.Student, error) {
	if name == "" {
		name = models.DefaultStudentName
	}

	student := &models.Student{StudentNo: studentNo, Name: name}
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "student_no"}}, DoNothing: true}).
		Create(student).Error
	if err != nil {
		return nil, err
	}

	return r.FindByStudentNo(ctx, studentNo)
}
