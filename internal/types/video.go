package types

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson   *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	Title    string    `gorm:"column:title;not null" json:"title"`
	URL      string    `gorm:"column:url;not null" json:"url"`
	// Platform is one of youtube, vimeo, drive or other.
	Platform  string    `gorm:"column:platform;not null;default:youtube" json:"platform"`
	Duration  int       `gorm:"column:duration;not null;default:0" json:"duration"`
	Views     int       `gorm:"column:views;not null;default:0" json:"views"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Video) TableName() string { return "videos" }
