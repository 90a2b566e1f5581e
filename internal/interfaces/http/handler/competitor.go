package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/poolcrm/backend/internal/application/competitor"
)

// CompetitorHandler handles competitor research endpoints. Routes are
// registered behind the owner-only middleware.
type CompetitorHandler struct {
	BaseHandler
	competitorService *competitor.Service
}

// NewCompetitorHandler creates a new competitor handler
func NewCompetitorHandler(competitorService *competitor.Service) *CompetitorHandler {
	return &CompetitorHandler{competitorService: competitorService}
}

// RegisterRoutes registers competitor routes
func (h *CompetitorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/competitors/scrape", h.Scrape)
}

// Scrape godoc
//
//	@Summary	Scrape a competitor page
//	@Description	Pulls the product images off the page and stores them for review.
//	@Tags		competitors
//	@Accept		json
//	@Produce	json
//	@Param		request	body		competitor.ScrapeRequest	true	"Page URL"
//	@Success	200		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/competitors/scrape [post]
func (h *CompetitorHandler) Scrape(c *gin.Context) {
	var req competitor.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.competitorService.ScrapeImages(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
