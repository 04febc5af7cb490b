package dto

// StudentCreateRequest carries the direct-entry form for a new student.
type StudentCreateRequest struct {
	Name             string `form:"name" validate:"required,max=100"`
	NameKana         string `form:"name_kana" validate:"max=100"`
	Gender           string `form:"gender" validate:"omitempty,oneof=男 女"`
	HighSchool       string `form:"high_school" validate:"max=100"`
	CourseSubject    string `form:"course_subject" validate:"omitempty,oneof=文系 理系"`
	SchoolClass      string `form:"school_class" validate:"max=20"`
	Club             string `form:"club" validate:"max=100"`
	TargetUniversity string `form:"target_university" validate:"max=100"`
	TargetDept       string `form:"target_dept" validate:"max=100"`
	ClassID          string `form:"class_id" validate:"max=20"`
}

// GradeCreateRequest carries the direct-entry form for a single grade record.
// The same natural key as the importer applies, so re-submitting updates.
type GradeCreateRequest struct {
	StudentID     string `form:"student_id" validate:"required,max=20"`
	Date          string `form:"date" validate:"required,max=10"`
	LessonNumber  int    `form:"lesson_number" validate:"min=0"`
	LessonContent string `form:"lesson_content" validate:"max=200"`
	Comprehension int    `form:"comprehension" validate:"min=0"`
	Unseen        int    `form:"unseen" validate:"min=0"`
	Grammar       int    `form:"grammar" validate:"min=0"`
	Vocabulary    int    `form:"vocabulary" validate:"min=0"`
	Listening     int    `form:"listening" validate:"min=0"`
	Total         int    `form:"total" validate:"min=0"`
}

// AttendanceCreateRequest carries the direct-entry form for an attendance record.
type AttendanceCreateRequest struct {
	StudentID string `form:"student_id" validate:"required,max=20"`
	Date      string `form:"date" validate:"required,max=10"`
	Status    string `form:"status" validate:"required,oneof=出席 欠席 遅刻"`
}
