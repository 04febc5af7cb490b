package service

import (
	"encoding/csv"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
)

// ErrNoStudentRows indicates the student section was missing or empty. The
// student section is mandatory; the grade section may be absent.
var ErrNoStudentRows = errors.New("student data section missing or empty")

// Section markers recognised in uploaded CSV text. Both the long and short
// forms switch the active section without producing a row.
const (
	studentSectionMarker      = "【生徒データ】セクション"
	studentSectionMarkerShort = "【生徒データ】"
	gradeSectionMarker        = "【チェックテスト成績】セクション"
	gradeSectionMarkerShort   = "【チェックテスト成績】"
)

const (
	studentRowMinFields = 11
	gradeRowMinFields   = 10
)

// CSVParser splits two-section roster CSV text into typed row collections.
type CSVParser struct {
	logger zerolog.Logger
}

// NewCSVParser constructs the section parser.
func NewCSVParser(logger zerolog.Logger) *CSVParser {
	return &CSVParser{logger: logger.With().Str("component", "csv_parser").Logger()}
}

// Parse walks the text line by line. Within a section the first
// comma-containing line is a header and is discarded without inspection;
// every later comma-containing line is parsed as a quoted CSV record.
// Malformed or short rows are dropped with a diagnostic and parsing continues.
func (p *CSVParser) Parse(text string) ([]dto.StudentRow, []dto.GradeRow, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var students []dto.StudentRow
	var grades []dto.GradeRow

	section := ""
	studentHeaderSeen := false
	gradeHeaderSeen := false

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		switch line {
		case studentSectionMarker, studentSectionMarkerShort:
			section = "students"
			continue
		case gradeSectionMarker, gradeSectionMarkerShort:
			section = "grades"
			continue
		case "":
			continue
		}

		if !strings.Contains(line, ",") {
			continue
		}

		switch section {
		case "students":
			if !studentHeaderSeen {
				studentHeaderSeen = true
				continue
			}
			row, ok := p.parseStudentLine(line, i)
			if ok {
				students = append(students, row)
			}
		case "grades":
			if !gradeHeaderSeen {
				gradeHeaderSeen = true
				continue
			}
			row, ok := p.parseGradeLine(line, i)
			if ok {
				grades = append(grades, row)
			}
		}
	}

	if len(students) == 0 {
		return nil, nil, ErrNoStudentRows
	}

	return students, grades, nil
}

func (p *CSVParser) parseStudentLine(line string, lineNo int) (dto.StudentRow, bool) {
	values, err := parseCSVLine(line)
	if err != nil {
		p.logger.Warn().Err(err).Int("line", lineNo).Msg("dropping malformed student row")
		return dto.StudentRow{}, false
	}
	if len(values) < studentRowMinFields {
		p.logger.Warn().Int("line", lineNo).Int("fields", len(values)).Msg("dropping short student row")
		return dto.StudentRow{}, false
	}

	return dto.StudentRow{
		StudentCode:      values[0],
		Classroom:        values[1],
		Name:             values[2],
		NameKana:         values[3],
		Gender:           values[4],
		HighSchool:       values[5],
		CourseSubject:    values[6],
		SchoolClass:      values[7],
		Club:             values[8],
		TargetUniversity: values[9],
		TargetDept:       values[10],
	}, true
}

func (p *CSVParser) parseGradeLine(line string, lineNo int) (dto.GradeRow, bool) {
	values, err := parseCSVLine(line)
	if err != nil {
		p.logger.Warn().Err(err).Int("line", lineNo).Msg("dropping malformed grade row")
		return dto.GradeRow{}, false
	}
	if len(values) < gradeRowMinFields {
		p.logger.Warn().Int("line", lineNo).Int("fields", len(values)).Msg("dropping short grade row")
		return dto.GradeRow{}, false
	}

	ints := make([]int, 7)
	for idx, pos := range []int{1, 4, 5, 6, 7, 8, 9} {
		value, err := intOrZero(values[pos])
		if err != nil {
			p.logger.Warn().Err(err).Int("line", lineNo).Msg("dropping grade row with non-numeric score")
			return dto.GradeRow{}, false
		}
		ints[idx] = value
	}

	return dto.GradeRow{
		Name:          values[0],
		LessonNumber:  ints[0],
		LessonContent: values[2],
		Date:          values[3],
		Comprehension: ints[1],
		Unseen:        ints[2],
		Grammar:       ints[3],
		Vocabulary:    ints[4],
		Listening:     ints[5],
		Total:         ints[6],
	}, true
}

// parseCSVLine parses one line as a quoted CSV record, so double-quoted
// fields may carry embedded commas.
func parseCSVLine(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	return reader.Read()
}

func intOrZero(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
