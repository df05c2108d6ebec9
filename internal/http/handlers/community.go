package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cynq/cynq-backend/internal/http/response"
	"github.com/cynq/cynq-backend/internal/services"
)

type CommunityHandler struct {
	community services.CommunityService
}

func NewCommunityHandler(community services.CommunityService) *CommunityHandler {
	return &CommunityHandler{community: community}
}

// GET /api/community/resources
func (h *CommunityHandler) Resources(c *gin.Context) {
	resources, err := h.community.ListResources(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"resources": resources})
}

// GET /api/community/insights
func (h *CommunityHandler) Insights(c *gin.Context) {
	insights, err := h.community.ListInsights(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"insights": insights})
}

type shareInsightRequest struct {
	Text string `json:"text"`
}

// POST /api/community/insights
func (h *CommunityHandler) ShareInsight(c *gin.Context) {
	var in shareInsightRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	insight, err := h.community.ShareInsight(c.Request.Context(), in.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insight": insight})
}
