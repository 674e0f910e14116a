package controllers

import (
	"log/slog"
	"net/http"

	"friendgraph-api/services"
	"github.com/gin-gonic/gin"
)

type SearchController struct {
	search *services.SearchService
	logger *slog.Logger
}

func NewSearchController(search *services.SearchService, logger *slog.Logger) *SearchController {
	return &SearchController{search: search, logger: loggerOrDefault(logger)}
}

// Search handles GET /search?query=&searchMode=. Anonymous callers only see
// public content.
func (sc *SearchController) Search(c *gin.Context) {
	q := services.SearchQuery{
		Mode:     c.Query("searchMode"),
		ViewerID: c.GetString("user_id"),
	}
	if raw, ok := c.GetQuery("query"); ok {
		q.Query = &raw
	}

	results, err := sc.search.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
