package models

import "time"

// Student course tracks as they appear in the source rosters.
const (
	CourseLiberalArts = "文系"
	CourseScience     = "理系"
)

// Student represents an enrolled student. Identifiers follow the `s<N>` form;
// import-assigned ids carry no padding while direct entry uses `s%03d`.
type Student struct {
	ID               string    `gorm:"primaryKey;size:20" json:"id"`
	Classroom        string    `gorm:"size:100" json:"classroom"`
	Name             string    `gorm:"size:100;not null;index" json:"name"`
	NameKana         string    `gorm:"size:100" json:"name_kana"`
	Gender           string    `gorm:"size:10" json:"gender"`
	HighSchool       string    `gorm:"size:100" json:"high_school"`
	CourseSubject    string    `gorm:"size:50" json:"course_subject"`
	SchoolClass      string    `gorm:"size:20" json:"school_class"`
	Club             string    `gorm:"size:100" json:"club"`
	TargetUniversity string    `gorm:"size:100" json:"target_university"`
	TargetDept       string    `gorm:"size:100" json:"target_dept"`
	ClassID          *string   `gorm:"size:20" json:"class_id"`
	JoinDate         time.Time `json:"join_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
