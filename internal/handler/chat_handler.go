package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"hangouts/backend/internal/cache"
	"hangouts/backend/internal/hub"
	"hangouts/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// clientBuffer is how many undelivered events a streaming connection may lag
// behind before broadcasts to it are dropped.
const clientBuffer = 16

// MessageInput defines the structure for posting a chat message.
type MessageInput struct {
	Body string `json:"body" binding:"required"`
}

// CreateChatInput defines the structure for opening a conversation.
type CreateChatInput struct {
	OtherUserID uint `json:"other_user_id" binding:"required"`
}

// ChatHandler serves the chat directory and the fan-out channel.
type ChatHandler struct {
	chats   *store.ChatStore
	hub     *hub.Hub
	history *cache.HistoryCache
}

func NewChatHandler(chats *store.ChatStore, h *hub.Hub, history *cache.HistoryCache) *ChatHandler {
	return &ChatHandler{chats: chats, hub: h, history: history}
}

func pathChatID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return 0, false
	}
	return uint(id), true
}

// CreateChat godoc
// @Summary      Open a conversation
// @Description  Returns the single chat for the viewer and the other user, creating it if absent. Safe to call repeatedly and concurrently; both callers get the same chat.
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateChatInput true "Other participant"
// @Success      200  {object}  ChatResponse "Chat already existed"
// @Success      201  {object}  ChatResponse "Chat created"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Other user not found"
// @Router       /chats [post]
func (h *ChatHandler) CreateChat(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input CreateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, created, err := h.chats.GetOrCreate(c.Request.Context(), viewerID.(uint), input.OtherUserID)
	if err != nil {
		writeError(c, err)
		return
	}

	// Reload with participants for the response.
	chat, err = h.chats.GetForUser(c.Request.Context(), chat.ID, viewerID.(uint))
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, newChatResponse(*chat, viewerID.(uint)))
}

// ListChats godoc
// @Summary      List my conversations
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ChatResponse
// @Router       /chats [get]
func (h *ChatHandler) ListChats(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	chats, err := h.chats.ListInvolving(c.Request.Context(), viewerID.(uint))
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]ChatResponse, 0, len(chats))
	for _, chat := range chats {
		responses = append(responses, newChatResponse(chat, viewerID.(uint)))
	}
	c.JSON(http.StatusOK, responses)
}

// GetChat godoc
// @Summary      Get a conversation
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Chat ID"
// @Success      200  {object}  ChatResponse
// @Failure      404  {object}  ErrorResponse "Chat not found or viewer not a participant"
// @Router       /chats/{id} [get]
func (h *ChatHandler) GetChat(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	chatID, ok := pathChatID(c)
	if !ok {
		return
	}

	chat, err := h.chats.GetForUser(c.Request.Context(), chatID, viewerID.(uint))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newChatResponse(*chat, viewerID.(uint)))
}

// ListMessages godoc
// @Summary      Fetch recent chat history
// @Description  Returns the 20 most recent messages, oldest-first. Clients call this after (re)connecting to re-render history.
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Chat ID"
// @Success      200  {array}   MessageResponse
// @Failure      404  {object}  ErrorResponse "Chat not found or viewer not a participant"
// @Router       /chats/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	chatID, ok := pathChatID(c)
	if !ok {
		return
	}

	if _, err := h.chats.GetForUser(c.Request.Context(), chatID, viewerID.(uint)); err != nil {
		writeError(c, err)
		return
	}

	// Serve from the redis window when it is complete; a partial list can't
	// tell "few messages" from "cache warmed mid-history".
	if h.history.Enabled() {
		cached, err := h.history.Recent(c.Request.Context(), chatID)
		if err == nil && len(cached) == store.HistoryWindow {
			raw := make([]json.RawMessage, 0, len(cached))
			for _, item := range cached {
				raw = append(raw, json.RawMessage(item))
			}
			c.JSON(http.StatusOK, raw)
			return
		}
	}

	messages, err := h.chats.RecentMessages(c.Request.Context(), chatID)
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	rendered := make([][]byte, 0, len(messages))
	for _, m := range messages {
		resp := newMessageResponse(m)
		responses = append(responses, resp)
		if data, err := json.Marshal(resp); err == nil {
			rendered = append(rendered, data)
		}
	}
	if h.history.Enabled() {
		_ = h.history.Replace(c.Request.Context(), chatID, rendered)
	}
	c.JSON(http.StatusOK, responses)
}

// PostMessage godoc
// @Summary      Send a message
// @Description  Persists the message and broadcasts its rendered form to every connection currently subscribed to the chat's topic. Delivery is best-effort, at most once.
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Chat ID"
// @Param        input body      MessageInput  true  "Message body"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Empty body"
// @Failure      404  {object}  ErrorResponse "Chat not found or viewer not a participant"
// @Router       /chats/{id}/messages [post]
func (h *ChatHandler) PostMessage(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	chatID, ok := pathChatID(c)
	if !ok {
		return
	}

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message body must not be empty."})
		return
	}

	message, err := h.chats.CreateMessage(c.Request.Context(), chatID, viewerID.(uint), input.Body)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := newMessageResponse(*message)
	h.hub.Broadcast(chatID, hub.Event{Type: "message", Payload: resp})
	if rendered, err := json.Marshal(resp); err == nil {
		_ = h.history.Append(c.Request.Context(), chatID, rendered)
	}

	c.JSON(http.StatusCreated, resp)
}

// StreamEvents godoc
// @Summary      Subscribe to live chat events
// @Description  Server-sent event stream. Subscribes the connection to every chat the viewer is in at connect time; chats created later require a reconnect. Each event carries one rendered message.
// @Tags         chats
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string  "SSE stream"
// @Router       /chats/stream [get]
func (h *ChatHandler) StreamEvents(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	chats, err := h.chats.ListInvolving(c.Request.Context(), viewerID.(uint))
	if err != nil {
		writeError(c, err)
		return
	}

	chatIDs := make([]uint, 0, len(chats))
	for _, chat := range chats {
		chatIDs = append(chatIDs, chat.ID)
	}

	client := make(hub.Client, clientBuffer)
	h.hub.Subscribe(client, chatIDs...)
	defer h.hub.UnsubscribeAll(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-client:
			if !open {
				return false
			}
			c.SSEvent("message", string(event))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
