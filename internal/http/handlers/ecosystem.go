package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	eco "github.com/cynq/cynq-backend/internal/domain/ecosystem"
	"github.com/cynq/cynq-backend/internal/http/response"
	"github.com/cynq/cynq-backend/internal/services"
)

type EcosystemHandler struct {
	ecosystem services.EcosystemService
}

func NewEcosystemHandler(ecosystem services.EcosystemService) *EcosystemHandler {
	return &EcosystemHandler{ecosystem: ecosystem}
}

func categoryParam(c *gin.Context) (eco.Category, bool) {
	cat, ok := eco.ParseCategory(c.Param("category"))
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("unknown category %q", c.Param("category")))
		return "", false
	}
	return cat, true
}

// GET /api/ecosystem
func (h *EcosystemHandler) Snapshot(c *gin.Context) {
	snap, err := h.ecosystem.Snapshot(c.Request.Context(), callerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, snap)
}

// POST /api/ecosystem/import
func (h *EcosystemHandler) Import(c *gin.Context) {
	var batch services.ImportBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.ecosystem.Import(c.Request.Context(), callerID(c), batch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/ecosystem/:category
func (h *EcosystemHandler) CreateItem(c *gin.Context) {
	cat, ok := categoryParam(c)
	if !ok {
		return
	}
	var in services.CreateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.ecosystem.CreateItem(c.Request.Context(), callerID(c), cat, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// DELETE /api/ecosystem/:category/:id
func (h *EcosystemHandler) DeleteItem(c *gin.Context) {
	cat, ok := categoryParam(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid item id"))
		return
	}
	if err := h.ecosystem.DeleteItem(c.Request.Context(), callerID(c), cat, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// POST /api/ecosystem/relationships
func (h *EcosystemHandler) CreateRelationship(c *gin.Context) {
	var in services.CreateRelationshipInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rel, err := h.ecosystem.CreateRelationship(c.Request.Context(), callerID(c), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"relationship": rel})
}

// PUT /api/ecosystem/relationships/:id
func (h *EcosystemHandler) UpdateRelationship(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid relationship id"))
		return
	}
	var in services.UpdateRelationshipInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rel, err := h.ecosystem.UpdateRelationship(c.Request.Context(), callerID(c), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"relationship": rel})
}

// DELETE /api/ecosystem/relationships/:id
func (h *EcosystemHandler) DeleteRelationship(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid relationship id"))
		return
	}
	if err := h.ecosystem.DeleteRelationship(c.Request.Context(), callerID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
