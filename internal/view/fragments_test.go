package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
)

func TestEscStripsMarkup(t *testing.T) {
	require.Equal(t, "田中太郎", Esc("<script>alert(1)</script>田中太郎"))
	require.Equal(t, "A &amp; B", Esc("A & B"))
}

func TestStudentTableEscapesValues(t *testing.T) {
	classID := "c001"
	html := StudentTable([]models.Student{{
		ID:      "s1",
		Name:    "<b>田中太郎</b>",
		ClassID: &classID,
	}})
	require.Contains(t, html, "田中太郎")
	require.NotContains(t, html, "<b>")
	require.Contains(t, html, "c001")

	require.Contains(t, StudentTable(nil), "生徒がまだ登録されていません")
}

func TestImportPreviewTruncatesAfterFiveStudents(t *testing.T) {
	batch := dto.ImportBatch{}
	for i := 0; i < 8; i++ {
		batch.Students = append(batch.Students, dto.ResolvedStudent{Row: dto.StudentRow{Name: "生徒"}})
	}
	batch.Grades = []dto.LinkedGrade{{}, {}}
	batch.UnmatchedNames = []string{"不明な生徒"}

	html := ImportPreview("key-1", batch)
	require.Contains(t, html, `value="key-1"`)
	require.Contains(t, html, "他 3 件")
	require.Contains(t, html, "テスト成績: 2 件")
	require.Contains(t, html, "不明な生徒")
}

func TestImportResultListsErrorsAndWarnings(t *testing.T) {
	html := ImportResult(dto.ImportResult{
		AddedStudents:   2,
		UpdatedStudents: 1,
		AddedGrades:     3,
		Errors:          []string{"生徒 X の保存に失敗"},
		Warnings:        []string{"成績 Y は生徒データに存在しないためスキップしました"},
	})
	require.Contains(t, html, "追加 2 件")
	require.Contains(t, html, "更新 1 件")
	require.Contains(t, html, "成績: 追加 3 件")
	require.Contains(t, html, "保存に失敗")
	require.Contains(t, html, "スキップしました")
}

func TestComparisonSignAndTone(t *testing.T) {
	positive := Comparison(dto.GradeComparison{StudentAverage: 90, ClassAverage: 80, Difference: 10})
	require.Contains(t, positive, "+10点")
	require.Contains(t, positive, "positive")

	negative := Comparison(dto.GradeComparison{StudentAverage: 70, ClassAverage: 80, Difference: -10})
	require.Contains(t, negative, "-10点")
	require.Contains(t, negative, "negative")
}
