package models

import "fmt"

// Grade stores one lesson's check-test scores for a student. The primary key
// is synthetic (`g_<studentId>_<date>_<lessonNumber>`); the natural de-dup key
// for imports is (student_id, date, lesson_number).
type Grade struct {
	ID            string  `gorm:"primaryKey;size:60" json:"id"`
	StudentID     string  `gorm:"size:20;not null;index:idx_grades_natural,unique" json:"student_id"`
	ClassID       *string `gorm:"size:20" json:"class_id"`
	Date          string  `gorm:"size:10;not null;index:idx_grades_natural,unique" json:"date"`
	LessonNumber  int     `gorm:"index:idx_grades_natural,unique" json:"lesson_number"`
	LessonContent string  `gorm:"size:200" json:"lesson_content"`

	ScoreComprehension int `gorm:"default:0" json:"score_comprehension"`
	ScoreUnseen        int `gorm:"default:0" json:"score_unseen"`
	ScoreGrammar       int `gorm:"default:0" json:"score_grammar"`
	ScoreVocabulary    int `gorm:"default:0" json:"score_vocabulary"`
	ScoreListening     int `gorm:"default:0" json:"score_listening"`
	ScoreTotal         int `gorm:"default:0" json:"score_total"`

	// Max scores are shared across students today but kept per record.
	MaxComprehension int `gorm:"default:20" json:"max_comprehension"`
	MaxUnseen        int `gorm:"default:20" json:"max_unseen"`
	MaxGrammar       int `gorm:"default:20" json:"max_grammar"`
	MaxVocabulary    int `gorm:"default:20" json:"max_vocabulary"`
	MaxListening     int `gorm:"default:20" json:"max_listening"`
	MaxTotal         int `gorm:"default:100" json:"max_total"`
}

// GradeID builds the synthetic identifier for a grade record.
func GradeID(studentID, date string, lessonNumber int) string {
	return fmt.Sprintf("g_%s_%s_%d", studentID, date, lessonNumber)
}
