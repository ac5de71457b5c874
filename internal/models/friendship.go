package models

import "time"

// Friendship is one direction of a symmetric relation: for every row (A,B)
// there is a mirrored row (B,A). Both rows are created and destroyed together
// inside a single transaction; the mirror insert is guarded by an existence
// check so it never recurses.
type Friendship struct {
	UserID    uint `gorm:"primaryKey"`
	FriendID  uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
