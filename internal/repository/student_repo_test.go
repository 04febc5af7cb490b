package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Class{}, &models.Student{}, &models.Grade{}))
	return db
}

func TestStudentRepositoryMaxNumericID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	maxID, err := repo.MaxNumericID(ctx)
	require.NoError(t, err)
	require.Zero(t, maxID)

	for _, id := range []string{"s1", "s003", "s12", "legacy-7", "x99"} {
		require.NoError(t, db.Create(&models.Student{ID: id, Name: "生徒" + id}).Error)
	}

	maxID, err = repo.MaxNumericID(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, maxID, "ids outside the s<digits> form are ignored")
}

func TestStudentRepositoryFindFirstByNameOrdersByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Student{ID: "s2", Name: "田中太郎", HighSchool: "後の高校"}).Error)
	require.NoError(t, db.Create(&models.Student{ID: "s1", Name: "田中太郎", HighSchool: "先の高校"}).Error)

	student, err := repo.FindFirstByName(ctx, "田中太郎")
	require.NoError(t, err)
	require.Equal(t, "s1", student.ID, "duplicate names resolve to the lowest id")

	_, err = repo.FindFirstByName(ctx, "存在しない")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentRepositoryUpdatesMissingRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	err := repo.Updates(ctx, "missing", map[string]interface{}{"name": "誰か"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, db.Create(&models.Student{ID: "s1", Name: "田中太郎"}).Error)
	require.NoError(t, repo.Updates(ctx, "s1", map[string]interface{}{"high_school": "新高校"}))

	student, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "新高校", student.HighSchool)
}

func TestStudentRepositoryListByClass(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	classA, classB := "c001", "c002"
	require.NoError(t, db.Create(&models.Student{ID: "s2", Name: "佐藤花子", ClassID: &classA}).Error)
	require.NoError(t, db.Create(&models.Student{ID: "s1", Name: "田中太郎", ClassID: &classA}).Error)
	require.NoError(t, db.Create(&models.Student{ID: "s3", Name: "鈴木次郎", ClassID: &classB}).Error)

	students, err := repo.ListByClass(ctx, classA)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "s1", students[0].ID)
}
