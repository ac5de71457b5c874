package models

import "gorm.io/gorm"

// Message is a chat message. Messages are immutable once created and are only
// removed by the cascade when their owning chat is deleted.
type Message struct {
	gorm.Model
	ChatID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null"`
	Body     string `gorm:"not null"`

	Author User `gorm:"foreignKey:AuthorID"`
}
