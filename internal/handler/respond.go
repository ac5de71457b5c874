package handler

import (
	"net/http"
	"time"

	"hangouts/backend/internal/errs"
	"hangouts/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID             uint   `json:"id" example:"1"`
	Nickname       string `json:"nickname" example:"testuser"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	FriendsCount   int64  `json:"friends_count"`
	FollowedByMe   *bool  `json:"followed_by_me,omitempty"`
}

// FriendRequestResponse defines the structure for a pending friend request.
type FriendRequestResponse struct {
	ID          uint      `json:"id"`
	RequesterID uint      `json:"requester_id"`
	TargetID    uint      `json:"target_id"`
	Nickname    string    `json:"nickname"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatResponse defines the structure for a conversation.
type ChatResponse struct {
	ID            uint      `json:"id"`
	OtherUserID   uint      `json:"other_user_id"`
	OtherNickname string    `json:"other_nickname"`
	CreatedAt     time.Time `json:"created_at"`
}

// MessageResponse is the rendered form of a message. It is what history reads
// return and what the fan-out channel pushes to subscribers, verbatim.
type MessageResponse struct {
	ID             uint      `json:"id"`
	ChatID         uint      `json:"chat_id"`
	AuthorID       uint      `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func newMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ChatID:         m.ChatID,
		AuthorID:       m.AuthorID,
		AuthorNickname: m.Author.Nickname,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

func newChatResponse(chat models.Chat, viewerID uint) ChatResponse {
	resp := ChatResponse{
		ID:          chat.ID,
		OtherUserID: chat.OtherParticipant(viewerID),
		CreatedAt:   chat.CreatedAt,
	}
	if chat.UserAID == resp.OtherUserID {
		resp.OtherNickname = chat.UserA.Nickname
	} else {
		resp.OtherNickname = chat.UserB.Nickname
	}
	return resp
}

func newFriendRequestResponse(r models.FriendRequest, viewerID uint) FriendRequestResponse {
	resp := FriendRequestResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		TargetID:    r.TargetID,
		CreatedAt:   r.CreatedAt,
	}
	if r.RequesterID == viewerID {
		resp.Nickname = r.Target.Nickname
	} else {
		resp.Nickname = r.Requester.Nickname
	}
	return resp
}

// writeError maps a store error onto an HTTP status and renders it.
func writeError(c *gin.Context, err error) {
	var status int
	switch errs.ErrorCode(err) {
	case errs.ENOTFOUND:
		status = http.StatusNotFound
	case errs.ECONFLICT:
		status = http.StatusConflict
	case errs.EINVALID, errs.EINVALIDARG:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": errs.ErrorMessage(err)})
}
