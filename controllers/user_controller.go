package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"friendgraph-api/services"
	"friendgraph-api/utils"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	profiles *services.ProfileService
	logger   *slog.Logger
}

func NewUserController(profiles *services.ProfileService, logger *slog.Logger) *UserController {
	return &UserController{profiles: profiles, logger: loggerOrDefault(logger)}
}

// GetProfile returns :user_id as the caller is allowed to see it.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	otherID, ok := targetID(c)
	if !ok {
		return
	}

	profile, err := uc.profiles.View(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, uc.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (uc *UserController) GetSuggestions(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultSuggestionLimit)))
	if err != nil {
		limit = services.DefaultSuggestionLimit
	}
	if limit > utils.MaxPageLimit {
		limit = utils.MaxPageLimit
	}

	suggestions, err := uc.profiles.Suggestions(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, uc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": suggestions})
}
