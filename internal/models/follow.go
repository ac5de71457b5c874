package models

import "time"

// Follow is a directed edge: the follower observes the followee, not
// necessarily the other way around. The composite primary key makes the
// ordered pair unique.
type Follow struct {
	FollowerID uint `gorm:"primaryKey"`
	FolloweeID uint `gorm:"primaryKey"`
	CreatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Followee User `gorm:"foreignKey:FolloweeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
