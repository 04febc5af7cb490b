package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/repository"
)

func TestStudentServiceCreateAssignsPaddedID(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(repository.NewStudentRepository(db), validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Student{ID: "s7", Name: "既存生徒"}).Error)

	student, err := svc.Create(ctx, dto.StudentCreateRequest{
		Name:          "  田中太郎  ",
		Gender:        "男",
		CourseSubject: "文系",
		ClassID:       "c001",
	})
	require.NoError(t, err)
	require.Equal(t, "s008", student.ID)
	require.Equal(t, "田中太郎", student.Name, "names are trimmed")
	require.NotNil(t, student.ClassID)
	require.Equal(t, "c001", *student.ClassID)

	_, err = svc.Create(ctx, dto.StudentCreateRequest{Name: ""})
	require.Error(t, err)

	_, err = svc.Create(ctx, dto.StudentCreateRequest{Name: "誰か", Gender: "その他"})
	require.Error(t, err, "gender outside the roster values is rejected")
}

func TestStudentServiceGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(repository.NewStudentRepository(db), validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Student{ID: "s1", Name: "田中太郎"}).Error)

	student, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "田中太郎", student.Name)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrStudentNotFound)
}
