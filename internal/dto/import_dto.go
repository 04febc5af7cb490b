package dto

// StudentRow is one parsed row of the 【生徒データ】 section.
type StudentRow struct {
	StudentCode      string `json:"student_code"`
	Classroom        string `json:"classroom"`
	Name             string `json:"name"`
	NameKana         string `json:"name_kana"`
	Gender           string `json:"gender"`
	HighSchool       string `json:"high_school"`
	CourseSubject    string `json:"course_subject"`
	SchoolClass      string `json:"school_class"`
	Club             string `json:"club"`
	TargetUniversity string `json:"target_university"`
	TargetDept       string `json:"target_dept"`
}

// GradeRow is one parsed row of the 【チェックテスト成績】 section. The date is
// carried as text; it is not interpreted during parsing.
type GradeRow struct {
	Name          string `json:"name"`
	LessonNumber  int    `json:"lesson_number"`
	LessonContent string `json:"lesson_content"`
	Date          string `json:"date"`
	Comprehension int    `json:"comprehension"`
	Unseen        int    `json:"unseen"`
	Grammar       int    `json:"grammar"`
	Vocabulary    int    `json:"vocabulary"`
	Listening     int    `json:"listening"`
	Total         int    `json:"total"`
}

// ResolvedStudent pairs a parsed student row with its persisted-store identifier.
type ResolvedStudent struct {
	Row      StudentRow `json:"row"`
	ID       string     `json:"id"`
	Existing bool       `json:"existing"`
}

// LinkedGrade pairs a parsed grade row with the resolved student identifier.
type LinkedGrade struct {
	Row       GradeRow `json:"row"`
	StudentID string   `json:"student_id"`
}

// ImportBatch is the resolved-but-uncommitted import held between the preview
// and save steps.
type ImportBatch struct {
	SessionID      string            `json:"session_id"`
	Students       []ResolvedStudent `json:"students"`
	Grades         []LinkedGrade     `json:"grades"`
	UnmatchedNames []string          `json:"unmatched_names"`
}

// ImportResult is the summary returned after a batch commit. A batch always
// commits whatever succeeded; failures are listed, never retried.
type ImportResult struct {
	AddedStudents   int      `json:"added_students"`
	UpdatedStudents int      `json:"updated_students"`
	AddedGrades     int      `json:"added_grades"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
}
