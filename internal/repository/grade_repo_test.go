package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
)

func createGrade(t *testing.T, db *gorm.DB, studentID, date string, lesson, total int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Grade{
		ID:           models.GradeID(studentID, date, lesson),
		StudentID:    studentID,
		Date:         date,
		LessonNumber: lesson,
		ScoreTotal:   total,
		MaxTotal:     100,
	}).Error)
}

func TestGradeRepositoryListByStudentOrdersByDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Student{ID: "s1", Name: "田中太郎"}).Error)
	createGrade(t, db, "s1", "2026-04-17", 2, 91)
	createGrade(t, db, "s1", "2026-04-10", 1, 84)

	grades, err := repo.ListByStudent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, grades, 2)
	require.Equal(t, "2026-04-10", grades[0].Date)
	require.Equal(t, "2026-04-17", grades[1].Date)
}

func TestGradeRepositoryListByClassJoinsCurrentAssignment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRepository(db)
	ctx := context.Background()

	classA, classB := "c001", "c002"
	require.NoError(t, db.Create(&models.Student{ID: "s1", Name: "田中太郎", ClassID: &classA}).Error)
	require.NoError(t, db.Create(&models.Student{ID: "s2", Name: "佐藤花子", ClassID: &classB}).Error)
	createGrade(t, db, "s1", "2026-04-10", 1, 84)
	createGrade(t, db, "s2", "2026-04-10", 1, 91)

	grades, err := repo.ListByClass(ctx, classA)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	require.Equal(t, "s1", grades[0].StudentID)
}

func TestGradeRepositoryFindByNaturalKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Student{ID: "s1", Name: "田中太郎"}).Error)
	createGrade(t, db, "s1", "2026-04-10", 1, 84)

	grade, err := repo.FindByNaturalKey(ctx, "s1", "2026-04-10", 1)
	require.NoError(t, err)
	require.Equal(t, models.GradeID("s1", "2026-04-10", 1), grade.ID)

	_, err = repo.FindByNaturalKey(ctx, "s1", "2026-04-10", 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
