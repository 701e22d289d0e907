package models

import "time"

// DateLayout: Attendance.Date formatı. Sıfır dolgulu olduğu için string
// karşılaştırması kronolojik sırayla aynıdır.
const DateLayout = "2006-01-02"

// Attendance: kullanıcı başına günde tek kayıt (user_id + date tekil)
type Attendance struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	Date         string     `gorm:"size:10;not null;uniqueIndex:idx_attendance_user_date;index" json:"date"`
	CheckInTime  time.Time  `gorm:"not null" json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"` // çıkış yapılana kadar nil
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Attendance) TableName() string { return "attendances" }

// CheckedOut: çıkış saati set edilmiş mi
func (a *Attendance) CheckedOut() bool { return a.CheckOutTime != nil }
