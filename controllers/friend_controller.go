package controllers

import (
	"log/slog"
	"net/http"

	"friendgraph-api/services"
	"friendgraph-api/utils"
	"github.com/gin-gonic/gin"
)

type FriendController struct {
	relationships *services.RelationshipService
	profiles      *services.ProfileService
	logger        *slog.Logger
}

func NewFriendController(relationships *services.RelationshipService, profiles *services.ProfileService, logger *slog.Logger) *FriendController {
	return &FriendController{
		relationships: relationships,
		profiles:      profiles,
		logger:        loggerOrDefault(logger),
	}
}

// SendFriendRequest asks :user_id to become the caller's friend.
func (fc *FriendController) SendFriendRequest(c *gin.Context) {
	senderID := c.GetString("user_id")
	receiverID, ok := targetID(c)
	if !ok {
		return
	}

	if err := fc.relationships.RequestFriendship(c.Request.Context(), senderID, receiverID); err != nil {
		respondError(c, fc.logger, err)
		return
	}
	utils.SendTitle(c, "Friend request sent!")
}

// AcceptFriendRequest accepts the request :user_id sent to the caller.
func (fc *FriendController) AcceptFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	requesterID, ok := targetID(c)
	if !ok {
		return
	}

	if err := fc.relationships.AcceptFriendship(c.Request.Context(), requesterID, userID); err != nil {
		respondError(c, fc.logger, err)
		return
	}
	utils.SendTitle(c, "Friend request accepted!")
}

func (fc *FriendController) DeclineFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	requesterID, ok := targetID(c)
	if !ok {
		return
	}

	if err := fc.relationships.DeclineFriendship(c.Request.Context(), requesterID, userID); err != nil {
		respondError(c, fc.logger, err)
		return
	}
	utils.SendTitle(c, "Friend request declined!")
}

func (fc *FriendController) RemoveFriend(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID, ok := targetID(c)
	if !ok {
		return
	}

	if err := fc.relationships.Unfriend(c.Request.Context(), userID, friendID); err != nil {
		respondError(c, fc.logger, err)
		return
	}
	utils.SendTitle(c, "Friend removed!")
}

func (fc *FriendController) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), utils.DefaultPageLimit)

	result, err := fc.profiles.Friends(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPendingRequests lists the accounts waiting for the caller's decision.
func (fc *FriendController) GetPendingRequests(c *gin.Context) {
	userID := c.GetString("user_id")
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), utils.DefaultPageLimit)

	result, err := fc.profiles.PendingRequests(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (fc *FriendController) GetMutualFriends(c *gin.Context) {
	userID := c.GetString("user_id")
	otherID, ok := targetID(c)
	if !ok {
		return
	}

	count, err := fc.relationships.MutualCount(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mutual_friends": count})
}

func (fc *FriendController) GetFriendshipStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	otherID, ok := targetID(c)
	if !ok {
		return
	}

	status, err := fc.relationships.Status(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, fc.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
