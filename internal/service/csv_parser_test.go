package service

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "\ufeff【生徒データ】セクション\r\n" +
	"生徒ID,校舎,氏名,フリガナ,性別,高校,文理,クラス,部活,志望大学,志望学部\r\n" +
	"1,本校,田中太郎,タナカタロウ,男,県立高校,文系,A,サッカー,早稲田大学,法学部\r\n" +
	"2,本校,佐藤花子,サトウハナコ,女,私立高校,理系,B,,慶應義塾大学,理工学部\r\n" +
	"\r\n" +
	"【チェックテスト成績】セクション\r\n" +
	"氏名,回,授業内容,日付,理解,初見,文法,単語,リスニング,合計\r\n" +
	"田中太郎,1,関係代名詞,2026-04-10,18,15,17,16,18,84\r\n" +
	"佐藤花子,1,関係代名詞,2026-04-10,20,17,18,18,18,91\r\n"

func TestCSVParserParsesBothSections(t *testing.T) {
	parser := NewCSVParser(zerolog.Nop())

	students, grades, err := parser.Parse(sampleCSV)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Len(t, grades, 2)

	require.Equal(t, "田中太郎", students[0].Name)
	require.Equal(t, "文系", students[0].CourseSubject)
	require.Equal(t, "慶應義塾大学", students[1].TargetUniversity)

	require.Equal(t, "田中太郎", grades[0].Name)
	require.Equal(t, 1, grades[0].LessonNumber)
	require.Equal(t, "2026-04-10", grades[0].Date)
	require.Equal(t, 18, grades[0].Comprehension)
	require.Equal(t, 84, grades[0].Total)
}

func TestCSVParserAcceptsShortSectionMarkers(t *testing.T) {
	parser := NewCSVParser(zerolog.Nop())

	text := "【生徒データ】\n" +
		"生徒ID,校舎,氏名,フリガナ,性別,高校,文理,クラス,部活,志望大学,志望学部\n" +
		"1,本校,鈴木次郎,スズキジロウ,男,県立高校,理系,A,,東京大学,工学部\n" +
		"【チェックテスト成績】\n" +
		"氏名,回,授業内容,日付,理解,初見,文法,単語,リスニング,合計\n" +
		"鈴木次郎,2,仮定法,2026-04-17,15,12,14,13,15,69\n"

	students, grades, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Len(t, grades, 1)
	require.Equal(t, "鈴木次郎", grades[0].Name)
}

func TestCSVParserBlankScoresBecomeZero(t *testing.T) {
	parser := NewCSVParser(zerolog.Nop())

	text := "【生徒データ】セクション\n" +
		"生徒ID,校舎,氏名,フリガナ,性別,高校,文理,クラス,部活,志望大学,志望学部\n" +
		"1,本校,田中太郎,タナカタロウ,男,県立高校,文系,A,,早稲田大学,法学部\n" +
		"【チェックテスト成績】セクション\n" +
		"氏名,回,授業内容,日付,理解,初見,文法,単語,リスニング,合計\n" +
		"田中太郎,1,関係代名詞,2026-04-10,18,,17,,18,53\n"

	_, grades, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	require.Equal(t, 0, grades[0].Unseen)
	require.Equal(t, 0, grades[0].Vocabulary)
	require.Equal(t, 53, grades[0].Total)
}

func TestCSVParserDropsShortAndMalformedRows(t *testing.T) {
	parser := NewCSVParser(zerolog.Nop())

	text := "【生徒データ】セクション\n" +
		"生徒ID,校舎,氏名,フリガナ,性別,高校,文理,クラス,部活,志望大学,志望学部\n" +
		"1,本校,田中太郎,タナカタロウ,男,県立高校,文系,A,,早稲田大学,法学部\n" +
		"2,too,short\n" +
		"【チェックテスト成績】セクション\n" +
		"氏名,回,授業内容,日付,理解,初見,文法,単語,リスニング,合計\n" +
		"田中太郎,abc,関係代名詞,2026-04-10,18,15,17,16,18,84\n" +
		"田中太郎,1,関係代名詞,2026-04-10,18,15,17,16,18,84\n"

	students, grades, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, students, 1, "short student row should be dropped")
	require.Len(t, grades, 1, "non-numeric score row should be dropped")
}

func TestCSVParserQuotedFieldsKeepEmbeddedCommas(t *testing.T) {
	parser := NewCSVParser(zerolog.Nop())

	text := "【生徒データ】セクション\n" +
		"生徒ID,校舎,氏名,フリガナ,性別,高校,文理,クラス,部活,志望大学,志望学部\n" +
		"1,本校,田中太郎,タナカタロウ,男,\"県立,第一高校\",文系,A,,早稲田大学,法学部\n"

	students, _, err := parser.Parse(text)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "県立,第一高校", students[0].HighSchool)
}

func TestCSVParserRequiresStudentSection(t *testing.T) {
	parser := NewCSVParser(zerolog.Nop())

	gradeOnly := "【チェックテスト成績】セクション\n" +
		"氏名,回,授業内容,日付,理解,初見,文法,単語,リスニング,合計\n" +
		"田中太郎,1,関係代名詞,2026-04-10,18,15,17,16,18,84\n"

	for _, text := range []string{"", "ただのテキスト", gradeOnly} {
		_, _, err := parser.Parse(text)
		require.ErrorIs(t, err, ErrNoStudentRows)
	}
}

func TestCSVTemplateHasBOMAndCRLF(t *testing.T) {
	template := string(CSVTemplate())

	require.True(t, strings.HasPrefix(template, "\ufeff"))
	require.Contains(t, template, "\r\n")
	require.Contains(t, template, "【生徒データ】セクション")
	require.Contains(t, template, "【チェックテスト成績】セクション")

	// The template must survive a round trip through the parser.
	parser := NewCSVParser(zerolog.Nop())
	students, grades, err := parser.Parse(template)
	require.NoError(t, err)
	require.NotEmpty(t, students)
	require.NotEmpty(t, grades)
}
