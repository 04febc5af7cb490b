// Package view renders the HTML partials swapped into the admin UI. All
// user-derived text is sanitized before interpolation.
package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
)

var sanitizer = bluemonday.StrictPolicy()

// Esc strips any markup from user-derived text and escapes the remainder.
func Esc(value string) string {
	return html.EscapeString(sanitizer.Sanitize(value))
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return Esc(value)
}

// Message renders an informational message fragment.
func Message(text string) string {
	return fmt.Sprintf(`<p class="message">%s</p>`, Esc(text))
}

// ErrorMessage renders a user-visible error fragment.
func ErrorMessage(text string) string {
	return fmt.Sprintf(`<p class="message error">%s</p>`, Esc(text))
}

// StudentTable renders the roster listing.
func StudentTable(students []models.Student) string {
	if len(students) == 0 {
		return Message("生徒がまだ登録されていません")
	}

	var b strings.Builder
	b.WriteString(`<table class="data-table"><thead><tr>` +
		`<th>ID</th><th>氏名</th><th>高校</th><th>文系/理系</th><th>志望大学</th><th>講座</th>` +
		`</tr></thead><tbody>`)
	for _, s := range students {
		classID := "-"
		if s.ClassID != nil {
			classID = Esc(*s.ClassID)
		}
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			Esc(s.ID), Esc(s.Name), orDash(s.HighSchool), orDash(s.CourseSubject), orDash(s.TargetUniversity), classID)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// ClassList renders the class listing.
func ClassList(classes []models.Class) string {
	if len(classes) == 0 {
		return Message("講座がまだ登録されていません")
	}

	var b strings.Builder
	b.WriteString(`<table class="data-table"><thead><tr>` +
		`<th>ID</th><th>講座名</th><th>曜日</th><th>時間</th><th>定員</th>` +
		`</tr></thead><tbody>`)
	for _, c := range classes {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>`,
			Esc(c.ID), Esc(c.Name), orDash(c.Day), orDash(c.Time), c.Capacity)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// ClassStudentOptions renders the per-class student select options.
func ClassStudentOptions(students []models.Student) string {
	if len(students) == 0 {
		return `<option value="">生徒がいません</option>`
	}

	var b strings.Builder
	for _, s := range students {
		fmt.Fprintf(&b, `<option value="%s">%s</option>`, Esc(s.ID), Esc(s.Name))
	}
	return b.String()
}

// GradeTable renders the per-student grade table with score/max per subject.
func GradeTable(grades []models.Grade) string {
	if len(grades) == 0 {
		return Message("成績データがありません")
	}

	var b strings.Builder
	b.WriteString(`<table class="data-table"><thead><tr>` +
		`<th>日付</th><th>授業内容</th><th>理解</th><th>初見</th><th>文法</th><th>単語</th><th>リスニング</th><th>合計</th>` +
		`</tr></thead><tbody>`)
	for _, g := range grades {
		fmt.Fprintf(&b,
			`<tr><td>%s</td><td>%s</td><td>%d/%d</td><td>%d/%d</td><td>%d/%d</td><td>%d/%d</td><td>%d/%d</td><td class="total">%d/%d</td></tr>`,
			Esc(g.Date), orDash(g.LessonContent),
			g.ScoreComprehension, g.MaxComprehension,
			g.ScoreUnseen, g.MaxUnseen,
			g.ScoreGrammar, g.MaxGrammar,
			g.ScoreVocabulary, g.MaxVocabulary,
			g.ScoreListening, g.MaxListening,
			g.ScoreTotal, g.MaxTotal)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// Comparison renders the student-vs-class average cards.
func Comparison(c dto.GradeComparison) string {
	sign := ""
	tone := "positive"
	if c.Difference >= 0 {
		sign = "+"
	} else {
		tone = "negative"
	}

	return fmt.Sprintf(`<div class="comparison">`+
		`<div class="card"><p>あなたの平均</p><p class="score">%d点</p></div>`+
		`<div class="card"><p>クラス平均</p><p class="score">%d点</p></div>`+
		`<div class="card"><p>差（クラス比）</p><p class="score %s">%s%d点</p></div>`+
		`</div>`, c.StudentAverage, c.ClassAverage, tone, sign, c.Difference)
}

// Advice renders the study advice fragment.
func Advice(text string) string {
	return fmt.Sprintf(`<div class="advice"><p>%s</p></div>`, Esc(text))
}

// AttendanceSummary renders the attendance summary fragment.
func AttendanceSummary(s dto.AttendanceSummary) string {
	if s.Total == 0 {
		return Message("出席記録がありません")
	}

	return fmt.Sprintf(`<div class="attendance">`+
		`<h3>出席率: %d%% (%d/%d)</h3>`+
		`<div class="counts">`+
		`<div class="card present"><p>出席</p><p class="count">%d</p></div>`+
		`<div class="card absent"><p>欠席</p><p class="count">%d</p></div>`+
		`<div class="card late"><p>遅刻</p><p class="count">%d</p></div>`+
		`</div></div>`, s.Rate, s.Present, s.Total, s.Present, s.Absent, s.Late)
}

// ImportPreview renders the resolved-batch preview: the first five students,
// a remainder count, the matched grade count, and unmatched-grade warnings.
// The upload key travels in a hidden input consumed by the save request.
func ImportPreview(key string, batch dto.ImportBatch) string {
	preview := batch.Students
	remaining := 0
	if len(preview) > 5 {
		remaining = len(preview) - 5
		preview = preview[:5]
	}

	var b strings.Builder
	b.WriteString(`<div class="import-preview">`)
	fmt.Fprintf(&b, `<input type="hidden" name="upload_key" value="%s">`, Esc(key))
	b.WriteString(`<table class="data-table"><thead><tr>` +
		`<th>氏名</th><th>高校</th><th>性別</th><th>文系/理系</th><th>志望大学</th><th>志望学部</th>` +
		`</tr></thead><tbody>`)
	for _, s := range preview {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			Esc(s.Row.Name), orDash(s.Row.HighSchool), orDash(s.Row.Gender),
			orDash(s.Row.CourseSubject), orDash(s.Row.TargetUniversity), orDash(s.Row.TargetDept))
	}
	if remaining > 0 {
		fmt.Fprintf(&b, `<tr class="remainder"><td colspan="6">他 %d 件</td></tr>`, remaining)
	}
	if len(batch.Grades) > 0 {
		fmt.Fprintf(&b, `<tr class="grades"><td colspan="6"><strong>テスト成績: %d 件</strong></td></tr>`, len(batch.Grades))
	}
	b.WriteString(`</tbody></table>`)

	if len(batch.UnmatchedNames) > 0 {
		fmt.Fprintf(&b, `<p class="warning">生徒データに存在しない成績行: %d 件（`, len(batch.UnmatchedNames))
		for i, name := range batch.UnmatchedNames {
			if i > 0 {
				b.WriteString("、")
			}
			b.WriteString(Esc(name))
		}
		b.WriteString(`）</p>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// ImportHistory renders the audit trail of committed import batches.
func ImportHistory(entries []models.ImportLog) string {
	if len(entries) == 0 {
		return Message("インポート履歴がありません")
	}

	var b strings.Builder
	b.WriteString(`<table class="data-table"><thead><tr>` +
		`<th>日時</th><th>生徒追加</th><th>生徒更新</th><th>成績追加</th><th>エラー</th><th>警告</th>` +
		`</tr></thead><tbody>`)
	for _, e := range entries {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.AddedStudents, e.UpdatedStudents, e.AddedGrades, e.ErrorCount, e.WarningCount)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// ImportResult renders the post-commit summary with its error and warning lists.
func ImportResult(result dto.ImportResult) string {
	var b strings.Builder
	b.WriteString(`<div class="import-result">`)
	fmt.Fprintf(&b, `<p>生徒: 追加 %d 件 / 更新 %d 件、成績: 追加 %d 件</p>`,
		result.AddedStudents, result.UpdatedStudents, result.AddedGrades)
	if len(result.Errors) > 0 {
		b.WriteString(`<ul class="errors">`)
		for _, msg := range result.Errors {
			fmt.Fprintf(&b, `<li>%s</li>`, Esc(msg))
		}
		b.WriteString(`</ul>`)
	}
	if len(result.Warnings) > 0 {
		b.WriteString(`<ul class="warnings">`)
		for _, msg := range result.Warnings {
			fmt.Fprintf(&b, `<li>%s</li>`, Esc(msg))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
