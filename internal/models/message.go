package models

import (
	"time"
)

// MaxMessageLength bounds the text of a single message
const MaxMessageLength = 140

// Message represents a short post authored by a user
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Text      string    `gorm:"type:varchar(140);not null;column:text"`
	Timestamp time.Time `gorm:"not null;autoCreateTime;column:timestamp"`
	UserID    int64     `gorm:"not null;index;column:user_id"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}
