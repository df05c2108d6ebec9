package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeChatService scripts one SendMessage outcome per test.
type fakeChatService struct {
	fragments []string
	err       error

	cleared int
}

func (f *fakeChatService) SendMessage(ctx context.Context, ownerID, sessionID uuid.UUID, text string, onFragment func(delta string)) (*types.ChatMessage, error) {
	for _, d := range f.fragments {
		if onFragment != nil {
			onFragment(d)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &types.ChatMessage{ID: uuid.New(), SessionID: sessionID, Role: "assistant", Content: strings.Join(f.fragments, "")}, nil
}

func (f *fakeChatService) GetMessages(ctx context.Context, ownerID, sessionID uuid.UUID) ([]*types.ChatMessage, error) {
	return []*types.ChatMessage{}, nil
}

func (f *fakeChatService) ClearMessages(ctx context.Context, ownerID, sessionID uuid.UUID) error {
	f.cleared++
	return nil
}

func chatRequest(t *testing.T, h *ChatHandler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	// Tests bypass the auth middleware and seed the identity directly.
	router.Use(func(c *gin.Context) {
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: uuid.New()})
		c.Request = c.Request.WithContext(ctx)
	})
	router.POST("/api/chat/:sessionId/chat", h.Send)
	router.DELETE("/api/chat/:sessionId/clear", h.Clear)
	router.GET("/api/chat/:sessionId/messages", h.Messages)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatSend_StreamsFragmentsAndDoneSentinel(t *testing.T) {
	h := NewChatHandler(&fakeChatService{fragments: []string{"Hel", "lo"}}, nil, nil)
	w := chatRequest(t, h, "POST", "/api/chat/"+uuid.NewString()+"/chat", `{"message":"hi"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/event-stream") {
		t.Fatalf("content-type=%q", got)
	}
	body := w.Body.String()
	if !strings.Contains(body, `data: {"content":"Hel"}`) || !strings.Contains(body, `data: {"content":"lo"}`) {
		t.Fatalf("fragments missing: %s", body)
	}
	if !strings.Contains(body, "data: [DONE]") {
		t.Fatalf("missing done sentinel: %s", body)
	}
}

func TestChatSend_PreStreamNotFoundIsPlainJSON(t *testing.T) {
	h := NewChatHandler(&fakeChatService{err: services.ErrNotFound}, nil, nil)
	w := chatRequest(t, h, "POST", "/api/chat/"+uuid.NewString()+"/chat", `{"message":"hi"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
}

func TestChatSend_MidStreamFailureEmitsErrorEventWithoutDone(t *testing.T) {
	h := NewChatHandler(&fakeChatService{
		fragments: []string{"partial"},
		err:       fmt.Errorf("%w: connection reset", services.ErrUpstream),
	}, nil, nil)
	w := chatRequest(t, h, "POST", "/api/chat/"+uuid.NewString()+"/chat", `{"message":"hi"}`)

	body := w.Body.String()
	if !strings.Contains(body, `data: {"content":"partial"}`) {
		t.Fatalf("partial fragment missing: %s", body)
	}
	if !strings.Contains(body, `data: {"error":"stream interrupted"}`) {
		t.Fatalf("error event missing: %s", body)
	}
	if strings.Contains(body, "data: [DONE]") {
		t.Fatalf("done sentinel must be withheld on failure: %s", body)
	}
}

func TestChatSend_NoOutputUpstreamFailureIsPlainJSON(t *testing.T) {
	h := NewChatHandler(&fakeChatService{err: fmt.Errorf("%w: bad gateway", services.ErrUpstream)}, nil, nil)
	w := chatRequest(t, h, "POST", "/api/chat/"+uuid.NewString()+"/chat", `{"message":"hi"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"code":"upstream_error"`) {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
}

func TestChatSend_InvalidSessionIDIsBadRequest(t *testing.T) {
	h := NewChatHandler(&fakeChatService{}, nil, nil)
	w := chatRequest(t, h, "POST", "/api/chat/not-a-uuid/chat", `{"message":"hi"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestChatClear_ReturnsSuccess(t *testing.T) {
	svc := &fakeChatService{}
	h := NewChatHandler(svc, nil, nil)
	w := chatRequest(t, h, "DELETE", "/api/chat/"+uuid.NewString()+"/clear", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("body=%s", w.Body.String())
	}
	if svc.cleared != 1 {
		t.Fatalf("clear not invoked")
	}
}
