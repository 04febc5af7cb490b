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

func newAttendanceService(db *gorm.DB) AttendanceService {
	return NewAttendanceService(
		repository.NewAttendanceRepository(db),
		repository.NewStudentRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func seedAttendance(t *testing.T, db *gorm.DB, studentID, date, status string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Attendance{
		ID:        models.AttendanceID(studentID, date),
		StudentID: studentID,
		Date:      date,
		Status:    status,
	}).Error)
}

func TestAttendanceSummaryCountsAndRate(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	ctx := context.Background()

	seedStudent(t, db, "s1", "田中太郎", "")
	seedAttendance(t, db, "s1", "2026-04-10", models.AttendancePresent)
	seedAttendance(t, db, "s1", "2026-04-17", models.AttendancePresent)
	seedAttendance(t, db, "s1", "2026-04-24", models.AttendanceAbsent)
	seedAttendance(t, db, "s1", "2026-05-01", models.AttendanceLate)

	summary, err := svc.Summary(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, dto.AttendanceSummary{
		Present: 2,
		Absent:  1,
		Late:    1,
		Rate:    50,
		Total:   4,
	}, summary)
}

func TestAttendanceSummaryEmptyIsAllZero(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	ctx := context.Background()

	seedStudent(t, db, "s1", "田中太郎", "")

	summary, err := svc.Summary(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, dto.AttendanceSummary{}, summary)

	_, err = svc.Summary(ctx, "missing")
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestAttendanceCreateValidatesStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	ctx := context.Background()

	classID := "c001"
	require.NoError(t, db.Create(&models.Student{ID: "s1", Name: "田中太郎", ClassID: &classID}).Error)

	record, err := svc.Create(ctx, dto.AttendanceCreateRequest{
		StudentID: "s1",
		Date:      "2026-04-10",
		Status:    models.AttendanceLate,
	})
	require.NoError(t, err)
	require.Equal(t, models.AttendanceID("s1", "2026-04-10"), record.ID)
	require.NotNil(t, record.ClassID)
	require.Equal(t, "c001", *record.ClassID)

	_, err = svc.Create(ctx, dto.AttendanceCreateRequest{
		StudentID: "s1",
		Date:      "2026-04-10",
		Status:    "早退",
	})
	require.Error(t, err)
}
