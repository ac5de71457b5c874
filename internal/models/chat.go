package models

import "gorm.io/gorm"

// Chat is the single conversation container for an unordered pair of users.
// The pair is stored canonicalized (UserAID < UserBID) and carries a composite
// unique index, so at most one chat can ever exist for a pair; a concurrent
// second creator loses on the constraint and re-reads.
type Chat struct {
	gorm.Model
	UserAID uint `gorm:"not null;uniqueIndex:idx_chat_pair"`
	UserBID uint `gorm:"not null;uniqueIndex:idx_chat_pair"`

	UserA    User      `gorm:"foreignKey:UserAID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserB    User      `gorm:"foreignKey:UserBID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Messages []Message `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
}

// CanonicalPair orders two user ids so the lower one always comes first.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// Involves reports whether the user is one of the chat's two participants.
func (c *Chat) Involves(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// OtherParticipant returns the participant that is not the given user.
func (c *Chat) OtherParticipant(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}
