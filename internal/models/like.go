package models

// Like represents a user liking a message. The (user, message) pair is
// the row's identity.
type Like struct {
	UserID    int64 `gorm:"primaryKey;column:user_id"`
	MessageID int64 `gorm:"primaryKey;column:message_id"`

	// Relationships
	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Message *Message `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}
