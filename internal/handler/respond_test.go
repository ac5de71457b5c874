package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hangouts/backend/internal/errs"
	"hangouts/backend/internal/models"

	"github.com/gin-gonic/gin"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.Errorf(errs.ENOTFOUND, "Chat not found."), http.StatusNotFound},
		{"duplicate edge", errs.Errorf(errs.ECONFLICT, "You already follow this user."), http.StatusConflict},
		{"validation", errs.Errorf(errs.EINVALID, "Message body must not be empty."), http.StatusBadRequest},
		{"invalid argument", errs.Errorf(errs.EINVALIDARG, "You cannot follow yourself."), http.StatusBadRequest},
		{"unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tt.err)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestNewChatResponsePicksOtherParticipant(t *testing.T) {
	chat := models.Chat{
		UserAID: 1,
		UserBID: 2,
		UserA:   models.User{Nickname: "alice"},
		UserB:   models.User{Nickname: "bob"},
	}
	chat.ID = 7

	resp := newChatResponse(chat, 1)
	if resp.OtherUserID != 2 || resp.OtherNickname != "bob" {
		t.Errorf("viewer 1: other = (%d, %q), want (2, bob)", resp.OtherUserID, resp.OtherNickname)
	}

	resp = newChatResponse(chat, 2)
	if resp.OtherUserID != 1 || resp.OtherNickname != "alice" {
		t.Errorf("viewer 2: other = (%d, %q), want (1, alice)", resp.OtherUserID, resp.OtherNickname)
	}
}

func TestNewMessageResponseRendersAuthor(t *testing.T) {
	m := models.Message{
		ChatID:   3,
		AuthorID: 1,
		Body:     "hi",
		Author:   models.User{Nickname: "alice"},
	}
	m.ID = 9

	resp := newMessageResponse(m)
	if resp.ID != 9 || resp.ChatID != 3 || resp.AuthorNickname != "alice" || resp.Body != "hi" {
		t.Errorf("unexpected rendering: %+v", resp)
	}
}
