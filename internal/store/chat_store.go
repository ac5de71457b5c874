package store

import (
	"context"
	"errors"
	"strings"

	"hangouts/backend/internal/errs"
	"hangouts/backend/internal/models"

	"gorm.io/gorm"
)

// HistoryWindow is the number of trailing messages served to a reconnecting
// client. Fixed policy, not configurable.
const HistoryWindow = 20

// ChatStore maps unordered user pairs to their single chat and owns the
// messages inside it.
type ChatStore struct {
	db *gorm.DB
}

func NewChatStore(db *gorm.DB) *ChatStore {
	return &ChatStore{db: db}
}

// GetOrCreate returns the chat for the unordered pair, creating it if absent.
// The pair is canonicalized before the insert, so two concurrent first-time
// callers race on the unique index and the loser falls back to a read. The
// second return value reports whether this call created the chat.
func (s *ChatStore) GetOrCreate(ctx context.Context, userA, userB uint) (*models.Chat, bool, error) {
	if userA == userB {
		return nil, false, errs.Errorf(errs.EINVALIDARG, "You cannot open a chat with yourself.")
	}

	var other models.User
	if err := s.db.WithContext(ctx).First(&other, userB).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errs.Errorf(errs.ENOTFOUND, "The other user does not exist.")
		}
		return nil, false, err
	}

	low, high := models.CanonicalPair(userA, userB)

	var chat models.Chat
	err := s.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", low, high).
		First(&chat).Error
	if err == nil {
		return &chat, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	chat = models.Chat{UserAID: low, UserBID: high}
	err = s.db.WithContext(ctx).Create(&chat).Error
	if err == nil {
		return &chat, true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, err
	}

	// Lost the race; the winner's row is there to read.
	err = s.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", low, high).
		First(&chat).Error
	if err != nil {
		return nil, false, err
	}
	return &chat, false, nil
}

// ListInvolving returns every chat the user participates in.
func (s *ChatStore) ListInvolving(ctx context.Context, userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Preload("UserA").
		Preload("UserB").
		Find(&chats).Error
	return chats, err
}

// GetForUser looks up a chat and verifies the user participates in it.
// Non-participants get the same not-found answer as a missing chat.
func (s *ChatStore) GetForUser(ctx context.Context, chatID, userID uint) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).
		Preload("UserA").
		Preload("UserB").
		First(&chat, chatID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "Chat not found.")
		}
		return nil, err
	}
	if !chat.Involves(userID) {
		return nil, errs.Errorf(errs.ENOTFOUND, "Chat not found.")
	}
	return &chat, nil
}

// CreateMessage validates and persists a message from a chat participant.
func (s *ChatStore) CreateMessage(ctx context.Context, chatID, authorID uint, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errs.Errorf(errs.EINVALID, "Message body must not be empty.")
	}

	if _, err := s.GetForUser(ctx, chatID, authorID); err != nil {
		return nil, err
	}

	message := models.Message{ChatID: chatID, AuthorID: authorID, Body: body}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Preload("Author").First(&message, message.ID).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// RecentMessages returns the trailing window for a chat, oldest-first.
func (s *ChatStore) RecentMessages(ctx context.Context, chatID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("id DESC").
		Limit(HistoryWindow).
		Preload("Author").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// The query runs newest-first for the limit; flip to oldest-first for rendering.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MessageCount returns the number of messages in a chat.
func (s *ChatStore) MessageCount(ctx context.Context, chatID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("chat_id = ?", chatID).
		Count(&n).Error
	return n, err
}
