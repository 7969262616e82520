package types

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Level       string    `gorm:"column:level;not null" json:"level"`
	Thumbnail   string    `gorm:"column:thumbnail" json:"thumbnail"`
	VideoCount  int       `gorm:"column:video_count;not null;default:0" json:"video_count"`
	FileCount   int       `gorm:"column:file_count;not null;default:0" json:"file_count"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }
