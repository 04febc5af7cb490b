package models

// Class represents a course offering students and grades can reference.
type Class struct {
	ID       string `gorm:"primaryKey;size:20" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Day      string `gorm:"size:10" json:"day"`
	Time     string `gorm:"size:20" json:"time"`
	Capacity int    `gorm:"default:30" json:"capacity"`
}
