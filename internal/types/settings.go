package types

import (
	"time"

	"gorm.io/datatypes"
)

// Settings is the single row of site branding. The fixed row id is owned by
// the settings repo and never appears outside it.
type Settings struct {
	ID              int            `gorm:"primaryKey" json:"id"`
	PrimaryColor    string         `gorm:"column:primary_color" json:"primary_color"`
	SecondaryColor  string         `gorm:"column:secondary_color" json:"secondary_color"`
	HeroTitle       string         `gorm:"column:hero_title" json:"hero_title"`
	HeroDescription string         `gorm:"column:hero_description" json:"hero_description"`
	TeacherName     string         `gorm:"column:teacher_name" json:"teacher_name"`
	TeacherSubject  string         `gorm:"column:teacher_subject" json:"teacher_subject"`
	TeacherPhoto    string         `gorm:"column:teacher_photo" json:"teacher_photo"`
	SocialLinks     datatypes.JSON `gorm:"column:social_links" json:"social_links,omitempty"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (Settings) TableName() string { return "settings" }
