package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
)

// AttendanceRepository exposes persistence helpers for attendance records.
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
	Create(ctx context.Context, record *models.Attendance) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs the attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}
