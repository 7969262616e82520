package types

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson   *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	Name     string    `gorm:"column:name;not null" json:"name"`
	URL      string    `gorm:"column:url;not null" json:"url"`
	// Type is one of pdf, doc, docx, ppt, pptx, zip or rar.
	Type      string    `gorm:"column:type;not null;default:pdf" json:"type"`
	Size      int64     `gorm:"column:size;not null;default:0" json:"size"`
	Downloads int       `gorm:"column:downloads;not null;default:0" json:"downloads"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (File) TableName() string { return "files" }
