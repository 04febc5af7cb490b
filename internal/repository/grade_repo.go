package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
)

// GradeRepository exposes persistence helpers for grade records.
type GradeRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
	// ListByClass returns grades of every student currently assigned to the class.
	ListByClass(ctx context.Context, classID string) ([]models.Grade, error)
	FindByNaturalKey(ctx context.Context, studentID, date string, lessonNumber int) (models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Updates(ctx context.Context, id string, updates map[string]interface{}) error
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository constructs the grade repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) ListByClass(ctx context.Context, classID string) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.WithContext(ctx).
		Joins("JOIN students ON students.id = grades.student_id").
		Where("students.class_id = ?", classID).
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindByNaturalKey(ctx context.Context, studentID, date string, lessonNumber int) (models.Grade, error) {
	var grade models.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ? AND lesson_number = ?", studentID, date, lessonNumber).
		First(&grade).Error
	if err != nil {
		return models.Grade{}, err
	}
	return grade, nil
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepository) Updates(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Grade{}).Where("id = ?", id).Updates(updates).Error
}
