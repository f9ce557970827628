package model

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	Id        uint   `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"type:varchar(255);not null"`
	Content   string `gorm:"type:text;not null"`
	Source    string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	// Soft delete keeps the row so the autoincrement sequence never hands an
	// id back out after deletion.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
