package model

import (
	"time"
)

type Book struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null"`
	Description string
	PublishedAt *time.Time
	AuthorID    uint `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
