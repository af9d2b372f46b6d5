package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tradeflex/internal/auth"
	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

type fakeNotificationRepo struct {
	repository.Repository
	items  []models.Notification
	unread int64
}

func (f *fakeNotificationRepo) ListNotifications(ctx context.Context, params repository.ListNotificationsParams) ([]models.Notification, error) {
	return f.items, nil
}

func (f *fakeNotificationRepo) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	return f.unread, nil
}

func notificationTestServer(t *testing.T, repo repository.Repository) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	j := auth.JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	token, _, err := j.Sign(auth.Claims{
		Email:            "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	engine := gin.New()
	(&NotificationHandler{Repo: repo, Auth: auth.Middleware(j)}).Register(engine)
	return engine, token
}

func TestNotificationList_CarriesUnreadCount(t *testing.T) {
	repo := &fakeNotificationRepo{
		items: []models.Notification{
			{ID: 1, Kind: models.NotificationKindFollow, Title: "bob followed you"},
			{ID: 2, Kind: models.NotificationKindComment, Title: "bob commented", Read: true},
		},
		unread: 1,
	}
	engine, token := notificationTestServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data []models.Notification `json:"data"`
		Meta map[string]any        `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("items=%d", len(resp.Data))
	}
	unread, ok := resp.Meta["unread"].(float64)
	if !ok || int64(unread) != 1 {
		t.Fatalf("meta=%v want unread 1", resp.Meta)
	}
}

func TestNotificationList_RejectsAnonymous(t *testing.T) {
	engine, _ := notificationTestServer(t, &fakeNotificationRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401", rec.Code)
	}
}
