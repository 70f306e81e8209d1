package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mohanreddy3010/Blogging-Platform/internal/accounts"
	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
	"github.com/mohanreddy3010/Blogging-Platform/internal/notifications"
	"github.com/mohanreddy3010/Blogging-Platform/internal/posts"
	"github.com/mohanreddy3010/Blogging-Platform/internal/subscriptions"
	"github.com/mohanreddy3010/Blogging-Platform/internal/worker"
)

type testApp struct {
	router *gin.Engine
}

// newTestApp wires the full facade against an on-disk sqlite database. The
// fan-out enqueue is replaced with a synchronous delivery so tests observe
// notifications immediately.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Post{}, &models.Subscription{},
		&models.Notification{}, &models.OutboxEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	accountsSvc := accounts.NewService(db)
	deliverNow := func(eventID string) error {
		return worker.ProcessOutboxEvent(context.Background(), quiet, db, nil, eventID)
	}

	router := New(Deps{
		Accounts:      accountsSvc,
		Subscriptions: subscriptions.NewService(db),
		Posts:         posts.NewService(db, accountsSvc, deliverNow),
		Notifications: notifications.NewService(db),
		SessionSecret: "test-secret",
	})

	return &testApp{router: router}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestSignupLoginScenario(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/signup",
		`{"name":"Alice","email":"a@x.com","password":"p","role":"student"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	// Duplicate email is rejected
	w = app.do(t, http.MethodPost, "/api/signup",
		`{"name":"Alice","email":"a@x.com","password":"p","role":"student"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate signup: expected 400, got %d", w.Code)
	}

	// Missing fields are rejected
	w = app.do(t, http.MethodPost, "/api/signup", `{"name":"NoEmail","password":"p","role":"student"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("incomplete signup: expected 400, got %d", w.Code)
	}

	w = app.do(t, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"p"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"wrong"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad login: expected 400, got %d", w.Code)
	}
}

func TestLoginSetsSession(t *testing.T) {
	app := newTestApp(t)

	app.do(t, http.MethodPost, "/api/signup",
		`{"name":"Alice","email":"a@x.com","password":"p","role":"student"}`)

	w := app.do(t, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"p"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie on login")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["email"] != "a@x.com" || body["name"] != "Alice" {
		t.Errorf("unexpected identity: %v", body)
	}

	// Without the cookie the session is anonymous
	w = app.do(t, http.MethodGet, "/api/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous me: expected 401, got %d", w.Code)
	}
}

func TestGetUser(t *testing.T) {
	app := newTestApp(t)

	app.do(t, http.MethodPost, "/api/signup",
		`{"name":"Alice","email":"a@x.com","password":"p","role":"student"}`)

	w := app.do(t, http.MethodGet, "/api/user/a@x.com", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get user: expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["name"] != "Alice" || body["email"] != "a@x.com" {
		t.Errorf("unexpected user: %v", body)
	}

	w = app.do(t, http.MethodGet, "/api/user/missing@x.com", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing user: expected 404, got %d", w.Code)
	}
}

func TestSubscribeAndFetch(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/subscribe",
		`{"email":"a@x.com","subscriptions":["Sports","Travel"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("subscribe: expected 200, got %d", w.Code)
	}

	w = app.do(t, http.MethodGet, "/api/user/subscriptions?email=a@x.com", "")
	if w.Code != http.StatusOK {
		t.Fatalf("fetch subscriptions: expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	subs, ok := body["subscriptions"].([]any)
	if !ok || len(subs) != 2 {
		t.Errorf("expected 2 subscriptions, got %v", body)
	}

	w = app.do(t, http.MethodGet, "/api/user/subscriptions?email=nobody@x.com", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown subscriber: expected 404, got %d", w.Code)
	}
}

func TestCreatePostFanOut(t *testing.T) {
	app := newTestApp(t)

	app.do(t, http.MethodPost, "/api/signup",
		`{"name":"Bob","email":"b@x.com","password":"p","role":"faculty"}`)
	app.do(t, http.MethodPost, "/api/subscribe", `{"email":"a@x.com","subscriptions":["Sports"]}`)

	w := app.do(t, http.MethodPost, "/api/create-post",
		`{"email":"b@x.com","title":"Game Day","content":"Kickoff at noon","category":"Sports"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create post: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	// Unknown author is a 400
	w = app.do(t, http.MethodPost, "/api/create-post",
		`{"email":"ghost@x.com","title":"x","content":"","category":"Sports"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown author: expected 400, got %d", w.Code)
	}

	w = app.do(t, http.MethodGet, "/api/posts/Sports", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list posts: expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if postsList, ok := body["posts"].([]any); !ok || len(postsList) != 1 {
		t.Errorf("expected 1 sports post, got %v", body)
	}

	// The subscriber sees the notification
	w = app.do(t, http.MethodGet, "/api/notifications?email=a@x.com", "")
	if w.Code != http.StatusOK {
		t.Fatalf("notifications: expected 200, got %d", w.Code)
	}
	body = decodeBody(t, w)
	list, ok := body["notifications"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("expected 1 notification, got %v", body)
	}
	first, _ := list[0].(map[string]any)
	if first["title"] != "Game Day" {
		t.Errorf("expected notification titled Game Day, got %v", first)
	}

	// A non-subscriber sees nothing
	w = app.do(t, http.MethodGet, "/api/notifications?email=b@x.com", "")
	body = decodeBody(t, w)
	if list, _ := body["notifications"].([]any); len(list) != 0 {
		t.Errorf("expected no notifications for author, got %v", list)
	}
}

func TestDeleteNotification(t *testing.T) {
	app := newTestApp(t)

	app.do(t, http.MethodPost, "/api/signup",
		`{"name":"Bob","email":"b@x.com","password":"p","role":"faculty"}`)
	app.do(t, http.MethodPost, "/api/subscribe", `{"email":"a@x.com","subscriptions":["Sports"]}`)
	app.do(t, http.MethodPost, "/api/subscribe", `{"email":"c@x.com","subscriptions":["Sports"]}`)
	app.do(t, http.MethodPost, "/api/create-post",
		`{"email":"b@x.com","title":"Game Day","content":"","category":"Sports"}`)

	w := app.do(t, http.MethodGet, "/api/notifications?email=a@x.com", "")
	body := decodeBody(t, w)
	list := body["notifications"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(list))
	}
	id := list[0].(map[string]any)["_id"].(string)

	w = app.do(t, http.MethodDelete, "/api/notifications/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	// Deletion is global: the other recipient loses it too
	w = app.do(t, http.MethodGet, "/api/notifications?email=c@x.com", "")
	body = decodeBody(t, w)
	if list, _ := body["notifications"].([]any); len(list) != 0 {
		t.Errorf("expected notification gone for all recipients, got %v", list)
	}

	w = app.do(t, http.MethodDelete, "/api/notifications/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("double delete: expected 404, got %d", w.Code)
	}
}

func TestListCategories(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("categories: expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	list, ok := body["categories"].([]any)
	if !ok || len(list) != len(models.Categories) {
		t.Errorf("expected %d categories, got %v", len(models.Categories), body)
	}
}
