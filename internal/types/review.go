package types

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentName string    `gorm:"column:student_name;not null" json:"student_name"`
	Rating      int       `gorm:"column:rating;not null" json:"rating"`
	Comment     string    `gorm:"column:comment;not null" json:"comment"`
	Date        time.Time `gorm:"column:date;not null" json:"date"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
