package models

import "fmt"

// Attendance statuses as stored by the roster imports.
const (
	AttendancePresent = "出席"
	AttendanceAbsent  = "欠席"
	AttendanceLate    = "遅刻"
)

// Attendance records a single day's attendance for a student.
type Attendance struct {
	ID        string  `gorm:"primaryKey;size:40" json:"id"`
	StudentID string  `gorm:"size:20;not null;index" json:"student_id"`
	ClassID   *string `gorm:"size:20" json:"class_id"`
	Date      string  `gorm:"size:10;not null" json:"date"`
	Status    string  `gorm:"size:10;not null" json:"status"`
}

// AttendanceID builds the identifier for an attendance record.
func AttendanceID(studentID, date string) string {
	return fmt.Sprintf("a_%s_%s", studentID, date)
}
