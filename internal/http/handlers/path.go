package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cynq/cynq-backend/internal/http/response"
	"github.com/cynq/cynq-backend/internal/services"
)

type PathHandler struct {
	paths services.CriticalPathService
}

func NewPathHandler(paths services.CriticalPathService) *PathHandler {
	return &PathHandler{paths: paths}
}

type createPathRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	OverallTimeline string `json:"overall_timeline"`
	Template        string `json:"template"`
}

// POST /api/paths
//
// A request carrying a template key expands the seed template;
// otherwise an empty path is created from the supplied fields.
func (h *PathHandler) Create(c *gin.Context) {
	var in createPathRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var (
		path interface{}
		err  error
	)
	if in.Template != "" {
		path, err = h.paths.CreateFromTemplate(c.Request.Context(), callerID(c), in.Template)
	} else {
		path, err = h.paths.Create(c.Request.Context(), callerID(c), services.CreatePathInput{
			Title:           in.Title,
			Description:     in.Description,
			OverallTimeline: in.OverallTimeline,
		})
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path})
}

// GET /api/paths
func (h *PathHandler) List(c *gin.Context) {
	paths, err := h.paths.List(c.Request.Context(), callerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"paths": paths})
}

// GET /api/paths/:pathId
func (h *PathHandler) Get(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("pathId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid path id"))
		return
	}
	path, err := h.paths.Get(c.Request.Context(), callerID(c), pathID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"path": path})
}

// DELETE /api/paths/:pathId
func (h *PathHandler) Delete(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("pathId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid path id"))
		return
	}
	if err := h.paths.Delete(c.Request.Context(), callerID(c), pathID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// PATCH /api/paths/:pathId/phases/:phaseId/tasks/:taskId
func (h *PathHandler) UpdateTask(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("pathId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid path id"))
		return
	}
	phaseID, err := uuid.Parse(c.Param("phaseId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid phase id"))
		return
	}
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid task id"))
		return
	}
	var in services.UpdateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.paths.UpdateTask(c.Request.Context(), callerID(c), pathID, phaseID, taskID, in); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// GET /api/paths/templates
func (h *PathHandler) Templates(c *gin.Context) {
	keys, err := h.paths.TemplateKeys()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": keys})
}
