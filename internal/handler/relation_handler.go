package handler

import (
	"net/http"
	"strconv"

	"hangouts/backend/internal/models"
	"hangouts/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// RelationHandler serves follow, friend-request and friendship actions.
type RelationHandler struct {
	relations *store.RelationStore
}

func NewRelationHandler(relations *store.RelationStore) *RelationHandler {
	return &RelationHandler{relations: relations}
}

func pathUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

// Follow godoc
// @Summary      Follow a user
// @Description  Creates a directed follow edge from the viewer to the target user.
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      201  {object}  map[string]string "{"message": "Now following"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already following"
// @Router       /users/{id}/follow [post]
func (h *RelationHandler) Follow(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}

	if err := h.relations.Follow(c.Request.Context(), viewerID.(uint), targetID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Now following"})
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Unfollowed"}"
// @Failure      404  {object}  ErrorResponse "Follow not found"
// @Router       /users/{id}/follow [delete]
func (h *RelationHandler) Unfollow(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}

	if err := h.relations.Unfollow(c.Request.Context(), viewerID.(uint), targetID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// ListFollowers godoc
// @Summary      List a user's followers
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   PublicUserResponse
// @Router       /users/{id}/followers [get]
func (h *RelationHandler) ListFollowers(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	users, err := h.relations.ListFollowers(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.publicUsers(users))
}

// ListFollowing godoc
// @Summary      List the users a user follows
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   PublicUserResponse
// @Router       /users/{id}/following [get]
func (h *RelationHandler) ListFollowing(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	users, err := h.relations.ListFollowing(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.publicUsers(users))
}

// ListFriends godoc
// @Summary      List a user's friends
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   PublicUserResponse
// @Router       /users/{id}/friends [get]
func (h *RelationHandler) ListFriends(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	users, err := h.relations.ListFriends(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.publicUsers(users))
}

// SendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user.
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      201  {object}  FriendRequestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Request or friendship already exists"
// @Router       /users/{id}/request [post]
func (h *RelationHandler) SendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}

	request, err := h.relations.SendFriendRequest(c.Request.Context(), viewerID.(uint), targetID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newFriendRequestResponse(*request, viewerID.(uint)))
}

// ListRequests godoc
// @Summary      List pending friend requests
// @Description  Lists the viewer's pending requests, filtered by direction.
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        direction query     string  true  "incoming or outgoing"
// @Success      200       {array}   FriendRequestResponse
// @Failure      400       {object}  ErrorResponse
// @Router       /users/me/requests [get]
func (h *RelationHandler) ListRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var (
		requests []models.FriendRequest
		err      error
	)
	switch c.Query("direction") {
	case "incoming":
		requests, err = h.relations.ListPendingIncoming(c.Request.Context(), viewerID.(uint))
	case "outgoing":
		requests, err = h.relations.ListPendingOutgoing(c.Request.Context(), viewerID.(uint))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'direction' query parameter (incoming or outgoing) is required."})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, newFriendRequestResponse(r, viewerID.(uint)))
	}
	c.JSON(http.StatusOK, responses)
}

// AcceptRequest godoc
// @Summary      Accept friend request
// @Description  Deletes the pending request and creates the friendship in both directions, atomically.
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /requests/{id}/accept [post]
func (h *RelationHandler) AcceptRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := h.relations.AcceptFriendRequest(c.Request.Context(), uint(requestID), viewerID.(uint)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// CancelRequest godoc
// @Summary      Cancel or decline a friend request
// @Description  Removes a pending request. The requester cancels it; the target declines it.
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Request removed"}"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /requests/{id} [delete]
func (h *RelationHandler) CancelRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := h.relations.CancelFriendRequest(c.Request.Context(), uint(requestID), viewerID.(uint)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request removed"})
}

// Unfriend godoc
// @Summary      Remove a friend
// @Description  Destroys the friendship in both directions.
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend User ID"
// @Success      200  {object}  map[string]string "{"message": "Friend removed"}"
// @Failure      404  {object}  ErrorResponse "Friendship not found"
// @Router       /users/{id}/friend [delete]
func (h *RelationHandler) Unfriend(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}

	if err := h.relations.Unfriend(c.Request.Context(), viewerID.(uint), targetID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

func (h *RelationHandler) publicUsers(users []models.User) []PublicUserResponse {
	responses := make([]PublicUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, PublicUserResponse{ID: u.ID, Nickname: u.Nickname})
	}
	return responses
}
