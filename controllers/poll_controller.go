package controllers

import (
	"log/slog"
	"net/http"

	"friendgraph-api/services"
	"friendgraph-api/utils"
	"github.com/gin-gonic/gin"
)

type PollController struct {
	polls  *services.PollService
	logger *slog.Logger
}

func NewPollController(polls *services.PollService, logger *slog.Logger) *PollController {
	return &PollController{polls: polls, logger: loggerOrDefault(logger)}
}

func (pc *PollController) GetPolls(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), utils.DefaultPageLimit)

	result, err := pc.polls.Collection(c.Request.Context(), c.GetString("user_id"), page, limit)
	if err != nil {
		respondError(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (pc *PollController) GetPoll(c *gin.Context) {
	poll, err := pc.polls.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, poll)
}
