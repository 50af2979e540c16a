package model

import (
	"time"
)

// Contact is an address book entry owned by a user, table contacts.
// Phone may or may not belong to a registered user; nothing links the two.
type Contact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Phone     string    `gorm:"column:phone;type:varchar(32);not null;index" json:"phone"`
	UserID    *uint     `gorm:"column:user_id;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Contact) TableName() string {
	return "contacts"
}
