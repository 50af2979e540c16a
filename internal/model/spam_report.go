package model

import (
	"time"
)

// SpamReport records one accusation by one user against one phone number.
// Phone is a plain string, not a reference to users.phone.
type SpamReport struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone        string    `gorm:"column:phone;type:varchar(32);not null;index" json:"phone"`
	ReportedByID uint      `gorm:"column:reported_by_id;not null;index" json:"reportedById"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (SpamReport) TableName() string {
	return "spam_reports"
}
