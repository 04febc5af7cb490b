package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/repository"
)

// ErrStudentNotFound indicates the referenced student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// GradeService exposes grade listings, score aggregation and direct entry.
type GradeService interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
	// StudentAverage is the mean of each grade's total normalized to 0-100,
	// rounded half away from zero. An empty grade set yields 0.
	StudentAverage(ctx context.Context, studentID string) (int, error)
	// ClassAverage aggregates all grades of students in the class; date, when
	// non-empty, restricts the aggregation to that day.
	ClassAverage(ctx context.Context, classID, date string) (int, error)
	Comparison(ctx context.Context, studentID string) (dto.GradeComparison, error)
	Summary(ctx context.Context, studentID string) (dto.GradeSummary, error)
	Advice(ctx context.Context, studentID string) (string, error)
	// Upsert applies direct grade entry under the same natural key as the
	// importer, so re-submitting a lesson updates its scores in place.
	Upsert(ctx context.Context, req dto.GradeCreateRequest) (models.Grade, error)
}

type gradeService struct {
	grades     repository.GradeRepository
	students   repository.StudentRepository
	attendance repository.AttendanceRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(grades repository.GradeRepository, students repository.StudentRepository, attendance repository.AttendanceRepository, validator *validator.Validate, logger zerolog.Logger) GradeService {
	return &gradeService{
		grades:     grades,
		students:   students,
		attendance: attendance,
		validator:  validator,
		logger:     logger.With().Str("component", "grade_service").Logger(),
	}
}

func (s *gradeService) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s.grades.ListByStudent(ctx, studentID)
}

func (s *gradeService) StudentAverage(ctx context.Context, studentID string) (int, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return averageScore(grades), nil
}

func (s *gradeService) ClassAverage(ctx context.Context, classID, date string) (int, error) {
	grades, err := s.grades.ListByClass(ctx, classID)
	if err != nil {
		return 0, err
	}

	if date != "" {
		filtered := grades[:0]
		for _, grade := range grades {
			if grade.Date == date {
				filtered = append(filtered, grade)
			}
		}
		grades = filtered
	}

	return averageScore(grades), nil
}

func (s *gradeService) Comparison(ctx context.Context, studentID string) (dto.GradeComparison, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GradeComparison{}, ErrStudentNotFound
		}
		return dto.GradeComparison{}, err
	}

	studentAvg, err := s.StudentAverage(ctx, studentID)
	if err != nil {
		return dto.GradeComparison{}, err
	}

	classAvg := 0
	if student.ClassID != nil && *student.ClassID != "" {
		classAvg, err = s.ClassAverage(ctx, *student.ClassID, "")
		if err != nil {
			return dto.GradeComparison{}, err
		}
	}

	return dto.GradeComparison{
		StudentAverage: studentAvg,
		ClassAverage:   classAvg,
		Difference:     studentAvg - classAvg,
	}, nil
}

func (s *gradeService) Summary(ctx context.Context, studentID string) (dto.GradeSummary, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.GradeSummary{}, err
	}

	summary := dto.GradeSummary{Grades: grades, Count: len(grades)}
	if len(grades) == 0 {
		summary.Grades = []models.Grade{}
		return summary, nil
	}

	summary.Average = averageScore(grades)
	latest := grades[len(grades)-1].ScoreTotal
	summary.Latest = &latest

	return summary, nil
}

func (s *gradeService) Advice(ctx context.Context, studentID string) (string, error) {
	summary, err := s.Summary(ctx, studentID)
	if err != nil {
		return "", err
	}

	if summary.Count == 0 {
		return "成績データがまだ登録されていません。", nil
	}

	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return "", err
	}
	rate := attendanceRate(records)

	var advice []string

	switch {
	case summary.Average >= 80:
		advice = append(advice, "成績が優秀です。このペースを保ってください。")
	case summary.Average >= 60:
		advice = append(advice, "成績は安定しています。さらなる向上を目指しましょう。")
	default:
		advice = append(advice, "成績の向上が必要です。苦手な分野に集中して取り組んでください。")
	}

	switch {
	case rate == 100:
		advice = append(advice, "出席率100％です。その調子で頑張ってください！")
	case rate >= 90:
		advice = append(advice, "出席率が良好です。欠席をしないようにしましょう。")
	case rate >= 80:
		advice = append(advice, "出席率を改善してください。")
	default:
		advice = append(advice, "出席率が低下しています。授業への参加を重視してください。")
	}

	return strings.Join(advice, " "), nil
}

func (s *gradeService) Upsert(ctx context.Context, req dto.GradeCreateRequest) (models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Grade{}, err
	}

	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Grade{}, ErrStudentNotFound
		}
		return models.Grade{}, err
	}

	existing, err := s.grades.FindByNaturalKey(ctx, req.StudentID, req.Date, req.LessonNumber)
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"score_comprehension": req.Comprehension,
			"score_unseen":        req.Unseen,
			"score_grammar":       req.Grammar,
			"score_vocabulary":    req.Vocabulary,
			"score_listening":     req.Listening,
			"score_total":         req.Total,
		}
		if err := s.grades.Updates(ctx, existing.ID, updates); err != nil {
			return models.Grade{}, err
		}
		return s.grades.FindByNaturalKey(ctx, req.StudentID, req.Date, req.LessonNumber)
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.Grade{
			ID:                 models.GradeID(req.StudentID, req.Date, req.LessonNumber),
			StudentID:          req.StudentID,
			ClassID:            student.ClassID,
			Date:               req.Date,
			LessonNumber:       req.LessonNumber,
			LessonContent:      req.LessonContent,
			ScoreComprehension: req.Comprehension,
			ScoreUnseen:        req.Unseen,
			ScoreGrammar:       req.Grammar,
			ScoreVocabulary:    req.Vocabulary,
			ScoreListening:     req.Listening,
			ScoreTotal:         req.Total,
			MaxComprehension:   20,
			MaxUnseen:          20,
			MaxGrammar:         20,
			MaxVocabulary:      20,
			MaxListening:       20,
			MaxTotal:           100,
		}
		if err := s.grades.Create(ctx, &record); err != nil {
			return models.Grade{}, err
		}
		return record, nil
	default:
		return models.Grade{}, err
	}
}

// averageScore scales each total to 0-100 against its max before averaging.
// A zero max contributes zero rather than dividing.
func averageScore(grades []models.Grade) int {
	if len(grades) == 0 {
		return 0
	}

	var total float64
	for _, grade := range grades {
		if grade.MaxTotal > 0 {
			total += float64(grade.ScoreTotal) / float64(grade.MaxTotal) * 100
		}
	}

	return int(math.Round(total / float64(len(grades))))
}
