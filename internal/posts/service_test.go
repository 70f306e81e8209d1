package posts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mohanreddy3010/Blogging-Platform/internal/accounts"
	"github.com/mohanreddy3010/Blogging-Platform/internal/apperr"
	"github.com/mohanreddy3010/Blogging-Platform/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.OutboxEvent{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createAuthor(t *testing.T, db *gorm.DB, email string) *accounts.Service {
	t.Helper()

	accountsSvc := accounts.NewService(db)
	if err := accountsSvc.CreateAccount(context.Background(), "Bob", email, "p", "student"); err != nil {
		t.Fatalf("failed to create author: %v", err)
	}
	return accountsSvc
}

func TestCreateUnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, accounts.NewService(db), nil)

	_, err := svc.Create(context.Background(), "ghost@x.com", "Title", "Body", "Sports")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	var count int64
	db.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no posts, got %d", count)
	}
}

func TestCreateWritesPostAndOutboxEvent(t *testing.T) {
	db := newTestDB(t)
	accountsSvc := createAuthor(t, db, "b@x.com")

	var enqueued []string
	svc := NewService(db, accountsSvc, func(eventID string) error {
		enqueued = append(enqueued, eventID)
		return nil
	})

	post, err := svc.Create(context.Background(), "b@x.com", "Game Day", "Kickoff at noon", "Sports")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var event models.OutboxEvent
	if err := db.Where("post_id = ?", post.ID).First(&event).Error; err != nil {
		t.Fatalf("outbox event not written: %v", err)
	}
	if event.Status != models.OutboxStatusPending {
		t.Errorf("expected pending event, got %s", event.Status)
	}
	if event.EventType != models.EventPostCreated {
		t.Errorf("expected event type %s, got %s", models.EventPostCreated, event.EventType)
	}

	if len(enqueued) != 1 || enqueued[0] != event.EventID {
		t.Errorf("expected fan-out enqueued for %s, got %v", event.EventID, enqueued)
	}
}

func TestCreateSurvivesEnqueueFailure(t *testing.T) {
	db := newTestDB(t)
	accountsSvc := createAuthor(t, db, "b@x.com")

	svc := NewService(db, accountsSvc, func(string) error {
		return errors.New("redis down")
	})

	// The post write wins: enqueue failure is left for the sweeper
	if _, err := svc.Create(context.Background(), "b@x.com", "Game Day", "", "Sports"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var posts, events int64
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.OutboxEvent{}).Where("status = ?", models.OutboxStatusPending).Count(&events)
	if posts != 1 || events != 1 {
		t.Errorf("expected 1 post and 1 pending event, got %d and %d", posts, events)
	}
}

func TestListByCategory(t *testing.T) {
	db := newTestDB(t)
	accountsSvc := createAuthor(t, db, "b@x.com")
	svc := NewService(db, accountsSvc, nil)
	ctx := context.Background()

	for _, p := range []struct{ title, category string }{
		{"Game Day", "Sports"},
		{"Season Recap", "Sports"},
		{"Library Hours", "Campus"},
	} {
		if _, err := svc.Create(ctx, "b@x.com", p.title, "", p.category); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, err := svc.ListByCategory(ctx, "Sports")
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sports posts, got %d", len(list))
	}
	for _, p := range list {
		if p.Category != "Sports" {
			t.Errorf("unexpected category %s", p.Category)
		}
	}

	empty, err := svc.ListByCategory(ctx, "Alumni")
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no alumni posts, got %d", len(empty))
	}
}
