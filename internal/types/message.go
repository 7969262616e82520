package types

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentName string    `gorm:"column:student_name;not null" json:"student_name"`
	Phone       string    `gorm:"column:phone" json:"phone"`
	Email       string    `gorm:"column:email" json:"email"`
	Content     string    `gorm:"column:content;not null" json:"content"`
	IsRead      bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
