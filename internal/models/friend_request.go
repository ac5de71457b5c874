package models

import "time"

// FriendRequest is a pending, directed proposal for a friendship. It is
// deleted when cancelled or declined, and replaced by a mirrored Friendship
// pair when accepted.
type FriendRequest struct {
	ID          uint `gorm:"primaryKey"`
	RequesterID uint `gorm:"not null;uniqueIndex:idx_friend_request_pair"`
	TargetID    uint `gorm:"not null;uniqueIndex:idx_friend_request_pair"`
	CreatedAt   time.Time

	Requester User `gorm:"foreignKey:RequesterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Target    User `gorm:"foreignKey:TargetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
