package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/repository"
)

func newGradeService(db *gorm.DB) GradeService {
	return NewGradeService(
		repository.NewGradeRepository(db),
		repository.NewStudentRepository(db),
		repository.NewAttendanceRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func seedStudent(t *testing.T, db *gorm.DB, id, name, classID string) {
	t.Helper()
	student := models.Student{ID: id, Name: name}
	if classID != "" {
		student.ClassID = &classID
	}
	require.NoError(t, db.Create(&student).Error)
}

func seedGrade(t *testing.T, db *gorm.DB, studentID, date string, lesson, total, max int) {
	t.Helper()
	grade := models.Grade{
		ID:           models.GradeID(studentID, date, lesson),
		StudentID:    studentID,
		Date:         date,
		LessonNumber: lesson,
		ScoreTotal:   total,
		MaxTotal:     max,
	}
	require.NoError(t, db.Create(&grade).Error)
}

func TestGradeServiceStudentAverageRoundsHalfUp(t *testing.T) {
	db := newTestDB(t)
	svc := newGradeService(db)
	ctx := context.Background()

	seedStudent(t, db, "s1", "田中太郎", "")
	seedGrade(t, db, "s1", "2026-04-10", 1, 84, 100)
	seedGrade(t, db, "s1", "2026-04-17", 2, 91, 100)

	avg, err := svc.StudentAverage(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 88, avg, "87.5 rounds up")
}

func TestGradeServiceAverageNormalizesAgainstMax(t *testing.T) {
	db := newTestDB(t)
	svc := newGradeService(db)
	ctx := context.Background()

	seedStudent(t, db, "s1", "田中太郎", "")
	seedGrade(t, db, "s1", "2026-04-10", 1, 40, 50)
	seedGrade(t, db, "s1", "2026-04-17", 2, 60, 100)

	avg, err := svc.StudentAverage(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 70, avg, "(80 + 60) / 2")
}

func TestGradeServiceEmptyAndZeroMaxGradesAreSafe(t *testing.T) {
	db := newTestDB(t)
	svc := newGradeService(db)
	ctx := context.Background()

	seedStudent(t, db, "s1", "田中太郎", "")

	avg, err := svc.StudentAverage(ctx, "s1")
	require.NoError(t, err)
	require.Zero(t, avg)

	// A zero max contributes zero instead of dividing.
	seedGrade(t, db, "s1", "2026-04-10", 1, 10, 0)
	avg, err = svc.StudentAverage(ctx, "s1")
	require.NoError(t, err)
	require.Zero(t, avg)
}

func TestGradeServiceComparison(t *testing.T) {
	db := newTestDB(t)
	svc := newGradeService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Class{ID: "c001", Name: "英語S"}).Error)
	seedStudent(t, db, "s1", "田中太郎", "c001")
	seedStudent(t, db, "s2", "佐藤花子", "c001")
	seedGrade(t, db, "s1", "2026-04-10", 1, 90, 100)
	seedGrade(t, db, "s2", "2026-04-10", 1, 70, 100)

	comparison, err := svc.Comparison(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 90, comparison.StudentAverage)
	require.Equal(t, 80, comparison.ClassAverage)
	require.Equal(t, 10, comparison.Difference)

	_, err = svc.Comparison(ctx, "missing")
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestGradeServiceAdviceThresholds(t *testing.T) {
	db := newTestDB(t)
	svc := newGradeService(db)
	ctx := context.Background()

	seedStudent(t, db, "s1", "田中太郎", "")

	advice, err := svc.Advice(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "成績データがまだ登録されていません。", advice)

	seedGrade(t, db, "s1", "2026-04-10", 1, 85, 100)
	require.NoError(t, db.Create(&models.Attendance{
		ID:        models.AttendanceID("s1", "2026-04-10"),
		StudentID: "s1",
		Date:      "2026-04-10",
		Status:    models.AttendancePresent,
	}).Error)

	advice, err = svc.Advice(ctx, "s1")
	require.NoError(t, err)
	require.Contains(t, advice, "成績が優秀です")
	require.Contains(t, advice, "出席率100％です")
}

func TestGradeServiceUpsertUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	svc := newGradeService(db)
	ctx := context.Background()

	seedStudent(t, db, "s1", "田中太郎", "")

	req := dto.GradeCreateRequest{
		StudentID:     "s1",
		Date:          "2026-04-10",
		LessonNumber:  1,
		LessonContent: "関係代名詞",
		Comprehension: 18,
		Total:         84,
	}

	created, err := svc.Upsert(ctx, req)
	require.NoError(t, err)
	require.Equal(t, models.GradeID("s1", "2026-04-10", 1), created.ID)

	req.Total = 90
	updated, err := svc.Upsert(ctx, req)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, 90, updated.ScoreTotal)

	var count int64
	require.NoError(t, db.Model(&models.Grade{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	req.StudentID = "missing"
	_, err = svc.Upsert(ctx, req)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
