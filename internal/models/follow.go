package models

// Follow represents a directed follow edge between two users.
// The pair of ids is the edge's identity; the row either exists or it
// does not, there is no state field.
type Follow struct {
	UserBeingFollowedID int64 `gorm:"primaryKey;column:user_being_followed_id"`
	UserFollowingID     int64 `gorm:"primaryKey;column:user_following_id"`

	// Relationships
	Followed  *User `gorm:"foreignKey:UserBeingFollowedID;references:ID;constraint:OnDelete:CASCADE"`
	Following *User `gorm:"foreignKey:UserFollowingID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}
