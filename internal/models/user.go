package models

import (
	"time"
)

// Default profile images applied when signup omits them
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents an account in the system
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username  string    `gorm:"type:varchar(30);not null;uniqueIndex:users_username_ux;column:username"`
	Email     string    `gorm:"type:varchar(50);not null;uniqueIndex:users_email_ux;column:email"`
	Password  string    `gorm:"type:text;not null;column:password"` // bcrypt hash, never plaintext
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Profile fields
	ImageURL       string `gorm:"type:varchar(255);not null;default:'/static/images/default-pic.png';column:image_url"`
	HeaderImageURL string `gorm:"type:varchar(255);not null;default:'/static/images/warbler-hero.jpg';column:header_image_url"`
	Bio            string `gorm:"type:text;not null;default:'';column:bio"`
	Location       string `gorm:"type:varchar(30);not null;default:'';column:location"`

	// Relationships
	Messages  []Message `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Following []*User   `gorm:"many2many:follows;foreignKey:ID;joinForeignKey:user_following_id;references:ID;joinReferences:user_being_followed_id"`
	Followers []*User   `gorm:"many2many:follows;foreignKey:ID;joinForeignKey:user_being_followed_id;references:ID;joinReferences:user_following_id"`
	Likes     []Message `gorm:"many2many:likes;foreignKey:ID;joinForeignKey:user_id;references:ID;joinReferences:message_id"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
