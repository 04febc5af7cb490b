package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/repository"
)

// ErrClassNotFound indicates the referenced class does not exist.
var ErrClassNotFound = errors.New("class not found")

// ClassService exposes class listings and per-class rosters.
type ClassService interface {
	List(ctx context.Context) ([]models.Class, error)
	Students(ctx context.Context, classID string) ([]models.Student, error)
}

type classService struct {
	classes  repository.ClassRepository
	students repository.StudentRepository
	logger   zerolog.Logger
}

// NewClassService constructs the class service.
func NewClassService(classes repository.ClassRepository, students repository.StudentRepository, logger zerolog.Logger) ClassService {
	return &classService{
		classes:  classes,
		students: students,
		logger:   logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context) ([]models.Class, error) {
	return s.classes.List(ctx)
}

func (s *classService) Students(ctx context.Context, classID string) ([]models.Student, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return s.students.ListByClass(ctx, classID)
}
