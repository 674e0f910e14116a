package utils

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

// GenericErrorMessage is the only text a client sees for an internal failure.
const GenericErrorMessage = "Something went wrong!"

type ErrorMessage struct {
	Msg string `json:"msg"`
}

type ErrorResponse struct {
	Errors []ErrorMessage `json:"errors"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

func SendError(c *gin.Context, status int, messages ...string) {
	response := ErrorResponse{Errors: make([]ErrorMessage, 0, len(messages))}
	for _, msg := range messages {
		response.Errors = append(response.Errors, ErrorMessage{Msg: msg})
	}
	c.JSON(status, response)
}

func AbortWithError(c *gin.Context, status int, messages ...string) {
	SendError(c, status, messages...)
	c.Abort()
}

func SendInternalError(c *gin.Context) {
	SendError(c, http.StatusInternalServerError, GenericErrorMessage)
}

func SendTitle(c *gin.Context, title string) {
	c.JSON(http.StatusOK, TitleResponse{Title: title})
}
