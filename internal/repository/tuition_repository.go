package repository

import (
	"context"

	"github.com/sjperalta/tuition-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TuitionRepository defines the interface for tuition ledger data access
type TuitionRepository interface {
	FindByStudentAndTerm(ctx context.Context, studentID uint, term string) (*models.Tuition, error)
	FindForUpdate(ctx context.Context, studentID uint, term string) (*models.Tuition, error)
	CreateIfAbsent(ctx context.Context, tuition *models.Tuition) (bool, error)
	Update(ctx context.Context, tuition *models.Tuition) error
	Delete(ctx context.Context, id uint) error
	ListByStudent(ctx context.Context, studentID uint, query *ListQuery) ([]models.Tuition, int64, error)
	ListUnpaid(ctx context.Context, term string, query *ListQuery) ([]models.Tuition, int64, error)
}

type tuitionRepository struct {
	db *gorm.DB
}

// NewTuitionRepository creates a new tuition repository
func NewTuitionRepository(db *gorm.DB) TuitionRepository {
	return &tuitionRepository{db: db}
}

func (r *tuitionRepository) FindByStudentAndTerm(ctx context.Context, studentID uint, term string) (*models.Tuition, error) {
	var tuition models.Tuition
	err := conn(ctx, r.db).
		Where("student_id = ? AND term = ?", studentID, term).
		First(&tuition).Error
	if err != nil {
		return nil, err
	}
	return &tuition, nil
}

// FindForUpdate locks the row until the surrounding transaction ends.
func (r *tuitionRepository) FindForUpdate(ctx context.Context, studentID uint, term string) (*models.Tuition, error) {
	var tuition models.Tuition
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ? AND term = ?", studentID, term).
		First(&tuition).Error
	if err != nil {
		return nil, err
	}
	return &tuition, nil
}

// CreateIfAbsent inserts the tuition unless one already exists for the same
// student and term. It reports whether a row was inserted; the transaction
// stays usable either way.
func (r *tuitionRepository) CreateIfAbsent(ctx context.Context, tuition *models.Tuition) (bool, error) {
	result := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "term"}},
			DoNothing: true,
		}).
		Create(tuition)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *tuitionRepository) Update(ctx context.Context, tuition *models.Tuition) error {
	return conn(ctx, r.db).
		Model(tuition).
		Select("TotalAmount", "PaidAmount", "Status", "UpdatedAt").
		Updates(tuition).Error
}

// Delete removes the tuition and its payments.
func (r *tuitionRepository) Delete(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)
	if err := db.Where("tuition_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Tuition{}, id).Error
}

func (r *tuitionRepository) ListByStudent(ctx context.Context, studentID uint, query *ListQuery) ([]models.Tuition, int64, error) {
	var tuitions []models.Tuition
	var total int64

	db := conn(ctx, r.db).Model(&models.Tuition{}).Where("student_id = ?", studentID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("term ASC").
		Scopes(query.Paginate).
		Find(&tuitions).Error
	return tuitions, total, err
}

// ListUnpaid returns tuitions of a term whose status is not Paid, with the
// student preloaded.
func (r *tuitionRepository) ListUnpaid(ctx context.Context, term string, query *ListQuery) ([]models.Tuition, int64, error) {
	var tuitions []models.Tuition
	var total int64

	db := conn(ctx, r.db).Model(&models.Tuition{}).
		Where("term = ? AND status <> ?", term, models.TuitionStatusPaid)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Student").
		Order("student_id ASC").
		Scopes(query.Paginate).
		Find(&tuitions).Error
	return tuitions, total, err
}
