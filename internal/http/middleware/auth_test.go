package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
	"github.com/cynq/cynq-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthService struct {
	userID uuid.UUID
	token  string
}

func (f *fakeAuthService) Register(ctx context.Context, in services.RegisterInput) (*types.User, *services.TokenPair, error) {
	return nil, nil, errors.New("not implemented")
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*types.User, *services.TokenPair, error) {
	return nil, nil, errors.New("not implemented")
}

func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error { return nil }

func (f *fakeAuthService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	if tokenString != f.token {
		return uuid.Nil, errors.New("invalid token")
	}
	return f.userID, nil
}

func (f *fakeAuthService) AccessTTL() time.Duration { return time.Hour }

func authRouter(t *testing.T, auth services.AuthService) *gin.Engine {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	router := gin.New()
	router.Use(NewAuthMiddleware(log, auth).RequireAuth())
	router.GET("/whoami", func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": rd.UserID.String()})
	})
	return router
}

func TestRequireAuth_MissingTokenIsUnauthorized(t *testing.T) {
	router := authRouter(t, &fakeAuthService{token: "good", userID: uuid.New()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/whoami", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"unauthorized"`) {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestRequireAuth_InvalidTokenIsUnauthorized(t *testing.T) {
	router := authRouter(t, &fakeAuthService{token: "good", userID: uuid.New()})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestRequireAuth_BearerHeaderSetsIdentity(t *testing.T) {
	userID := uuid.New()
	router := authRouter(t, &fakeAuthService{token: "good", userID: userID})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), userID.String()) {
		t.Fatalf("identity not propagated: %s", w.Body.String())
	}
}

func TestRequireAuth_QueryTokenSupportsEventSource(t *testing.T) {
	userID := uuid.New()
	router := authRouter(t, &fakeAuthService{token: "good", userID: userID})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/whoami?token=good", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
