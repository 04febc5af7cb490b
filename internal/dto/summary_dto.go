package dto

import "github.com/Yossy-AC/juku-seiseki-admin/internal/models"

// AttendanceSummary aggregates a student's attendance records. Rate is a
// rounded percentage; an empty record set yields all zeroes.
type AttendanceSummary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Rate    int `json:"rate"`
	Total   int `json:"total"`
}

// GradeSummary aggregates a student's grade records.
type GradeSummary struct {
	Grades  []models.Grade `json:"grades"`
	Average int            `json:"average"`
	Count   int            `json:"count"`
	Latest  *int           `json:"latest"`
}

// GradeComparison contrasts a student's average with their class average.
type GradeComparison struct {
	StudentAverage int `json:"student_average"`
	ClassAverage   int `json:"class_average"`
	Difference     int `json:"difference"`
}
