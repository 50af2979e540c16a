// Package model defines the database entities.
// This file defines the registered user.
package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt cost used for stored passwords.
const PasswordCost = 10

// MaxPasswordBytes is bcrypt's input limit. It counts bytes, not characters,
// so a short password in a multi-byte script can still exceed it.
const MaxPasswordBytes = 72

// User is a registered account, table users.
type User struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Name is the display name searched by name lookups.
	Name string `gorm:"column:name;type:varchar(100);not null;index" json:"name"`

	// Phone is unique across users. The unique index is what actually
	// prevents two concurrent registrations of the same number.
	Phone string `gorm:"column:phone;type:varchar(32);not null;uniqueIndex" json:"phone"`

	// Email is optional, unique when present.
	Email *string `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`

	// Password is the bcrypt hash. It is never serialized.
	Password string `gorm:"column:password;type:varchar(100);not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// SpamReports are the reports this user filed.
	SpamReports []SpamReport `gorm:"foreignKey:ReportedByID" json:"spamReports,omitempty"`

	// RawPassword carries the plaintext until BeforeSave hashes it.
	RawPassword string `gorm:"-" json:"-"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}

// BeforeSave hashes RawPassword into Password on create and update,
// so callers only ever set the plaintext.
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), PasswordCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
