// Package model defines the persisted entities.
// This file holds the user account together with its profile and privacy flags.
package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo is a registered person.
// Maps to the user_info table.
type UserInfo struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Name string `gorm:"column:name;type:varchar(100);not null"`

	// Email is the login identifier.
	Email string `gorm:"column:email;type:varchar(120);uniqueIndex;not null"`

	// Password holds the bcrypt hash, never the plaintext.
	Password string `gorm:"column:password;type:varchar(100);not null" json:"-"`

	// ProfilePic is an opaque image reference or data URL.
	ProfilePic *string `gorm:"column:profile_pic;type:text"`

	Phone    *string `gorm:"column:phone;type:varchar(20)"`
	Job      *string `gorm:"column:job;type:varchar(100)"`
	Bio      *string `gorm:"column:bio;type:text"`
	Location *string `gorm:"column:location;type:varchar(100)"`

	// Gender only feeds the reverse-label suggestion.
	Gender Gender `gorm:"column:gender;type:varchar(10)"`

	PhonePrivate    bool `gorm:"column:phone_private;not null;default:false"`
	JobPrivate      bool `gorm:"column:job_private;not null;default:false"`
	BioPrivate      bool `gorm:"column:bio_private;not null;default:false"`
	LocationPrivate bool `gorm:"column:location_private;not null;default:false"`

	// RawPassword receives the plaintext and is hashed in BeforeSave.
	RawPassword string `gorm:"-" json:"-"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave hashes RawPassword into Password on create and update.
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword compares plaintext against the stored hash.
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
