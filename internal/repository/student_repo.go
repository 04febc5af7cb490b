package repository

import (
	"context"
	"regexp"
	"strconv"

	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
)

var studentIDPattern = regexp.MustCompile(`^s(\d+)$`)

// StudentRepository exposes persistence helpers for student records.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
	GetByID(ctx context.Context, id string) (models.Student, error)
	// FindFirstByName returns the persisted student with the given exact name,
	// ordered by id so duplicate names resolve deterministically.
	FindFirstByName(ctx context.Context, name string) (models.Student, error)
	// MaxNumericID scans all ids of the form s<digits> and returns the largest
	// numeric suffix. Non-conforming ids are ignored.
	MaxNumericID(ctx context.Context) (int, error)
	Create(ctx context.Context, student *models.Student) error
	Updates(ctx context.Context, id string, updates map[string]interface{}) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs the student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Where("class_id = ?", classID).Order("id").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) FindFirstByName(ctx context.Context, name string) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id").
		First(&student).Error
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) MaxNumericID(ctx context.Context) (int, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	maxID := 0
	for _, id := range ids {
		match := studentIDPattern.FindStringSubmatch(id)
		if match == nil {
			continue
		}
		value, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if value > maxID {
			maxID = value
		}
	}

	return maxID, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Updates(ctx context.Context, id string, updates map[string]interface{}) error {
	tx := r.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
