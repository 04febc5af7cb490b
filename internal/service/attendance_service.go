package service

import (
	"context"
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/repository"
)

// AttendanceService exposes attendance summaries and record entry.
type AttendanceService interface {
	Summary(ctx context.Context, studentID string) (dto.AttendanceSummary, error)
	Create(ctx context.Context, req dto.AttendanceCreateRequest) (models.Attendance, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	students   repository.StudentRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(attendance repository.AttendanceRepository, students repository.StudentRepository, validator *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		attendance: attendance,
		students:   students,
		validator:  validator,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) Summary(ctx context.Context, studentID string) (dto.AttendanceSummary, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceSummary{}, ErrStudentNotFound
		}
		return dto.AttendanceSummary{}, err
	}

	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.AttendanceSummary{}, err
	}

	summary := dto.AttendanceSummary{Total: len(records)}
	if len(records) == 0 {
		return summary, nil
	}

	for _, record := range records {
		switch record.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLate:
			summary.Late++
		}
	}
	summary.Rate = attendanceRate(records)

	return summary, nil
}

func (s *attendanceService) Create(ctx context.Context, req dto.AttendanceCreateRequest) (models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Attendance{}, err
	}

	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attendance{}, ErrStudentNotFound
		}
		return models.Attendance{}, err
	}

	record := models.Attendance{
		ID:        models.AttendanceID(req.StudentID, req.Date),
		StudentID: req.StudentID,
		ClassID:   student.ClassID,
		Date:      req.Date,
		Status:    req.Status,
	}
	if err := s.attendance.Create(ctx, &record); err != nil {
		return models.Attendance{}, err
	}

	return record, nil
}

// attendanceRate is the rounded percentage of present records; an empty set
// yields 0 rather than dividing.
func attendanceRate(records []models.Attendance) int {
	if len(records) == 0 {
		return 0
	}

	present := 0
	for _, record := range records {
		if record.Status == models.AttendancePresent {
			present++
		}
	}

	return int(math.Round(float64(present) / float64(len(records)) * 100))
}
