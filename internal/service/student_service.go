package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/repository"
)

// StudentService exposes roster listing and direct student entry.
type StudentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id string) (models.Student, error)
	// Create performs direct entry. Unlike import-assigned ids, manually
	// created ids are zero-padded (`s%03d`).
	Create(ctx context.Context, req dto.StudentCreateRequest) (models.Student, error)
}

type studentService struct {
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(students repository.StudentRepository, validator *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		students:  students,
		validator: validator,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
	}
}

func (s *studentService) List(ctx context.Context) ([]models.Student, error) {
	return s.students.List(ctx)
}

func (s *studentService) Get(ctx context.Context, id string) (models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return student, nil
}

func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest) (models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}

	maxID, err := s.students.MaxNumericID(ctx)
	if err != nil {
		return models.Student{}, err
	}

	var classID *string
	if trimmed := strings.TrimSpace(req.ClassID); trimmed != "" {
		classID = &trimmed
	}

	student := models.Student{
		ID:               fmt.Sprintf("s%03d", maxID+1),
		Name:             strings.TrimSpace(req.Name),
		NameKana:         strings.TrimSpace(req.NameKana),
		Gender:           req.Gender,
		HighSchool:       strings.TrimSpace(req.HighSchool),
		CourseSubject:    req.CourseSubject,
		SchoolClass:      strings.TrimSpace(req.SchoolClass),
		Club:             strings.TrimSpace(req.Club),
		TargetUniversity: strings.TrimSpace(req.TargetUniversity),
		TargetDept:       strings.TrimSpace(req.TargetDept),
		ClassID:          classID,
		JoinDate:         s.now(),
	}
	if err := s.students.Create(ctx, &student); err != nil {
		return models.Student{}, err
	}

	return student, nil
}
