package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cynq/cynq-backend/internal/http/response"
	"github.com/cynq/cynq-backend/internal/services"
)

type ChatHandler struct {
	chat        services.ChatService
	sessions    services.SessionService
	suggestions services.SuggestionService
}

func NewChatHandler(chat services.ChatService, sessions services.SessionService, suggestions services.SuggestionService) *ChatHandler {
	return &ChatHandler{chat: chat, sessions: sessions, suggestions: suggestions}
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

// POST /api/chat/:sessionId/chat
//
// Failures before the first fragment are plain JSON errors. Once
// streaming has started the response is already committed as SSE, so a
// late failure becomes an error event and the [DONE] sentinel is
// withheld.
func (h *ChatHandler) Send(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid session id"))
		return
	}
	var in sendMessageRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", fmt.Errorf("streaming unsupported"))
		return
	}

	started := false
	begin := func() {
		if started {
			return
		}
		started = true
		c.Writer.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.WriteHeader(http.StatusOK)
		flusher.Flush()
	}

	_, sendErr := h.chat.SendMessage(c.Request.Context(), callerID(c), sessionID, in.Message, func(delta string) {
		begin()
		payload, _ := json.Marshal(gin.H{"content": delta})
		fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
		flusher.Flush()
	})

	if sendErr != nil {
		if !started {
			respondServiceError(c, sendErr)
			return
		}
		payload, _ := json.Marshal(gin.H{"error": "stream interrupted"})
		fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
		flusher.Flush()
		return
	}

	begin()
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	flusher.Flush()
}

// GET /api/chat/:sessionId/messages
func (h *ChatHandler) Messages(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid session id"))
		return
	}
	msgs, err := h.chat.GetMessages(c.Request.Context(), callerID(c), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}

// DELETE /api/chat/:sessionId/clear
func (h *ChatHandler) Clear(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid session id"))
		return
	}
	if err := h.chat.ClearMessages(c.Request.Context(), callerID(c), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

type setModelRequest struct {
	Model string `json:"model"`
}

// POST /api/chat/:sessionId/model
func (h *ChatHandler) SetModel(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid session id"))
		return
	}
	var in setModelRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := h.sessions.RetargetModel(c.Request.Context(), callerID(c), sessionID, in.Model)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

type suggestionsRequest struct {
	Profile string `json:"profile"`
}

// POST /api/chat/:sessionId/suggestions
func (h *ChatHandler) Suggestions(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid session id"))
		return
	}
	var in suggestionsRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.suggestions.SuggestRelationships(c.Request.Context(), callerID(c), sessionID, in.Profile)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"suggestions": out})
}
