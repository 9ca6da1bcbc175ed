package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) User {
	t.Helper()
	user := User{Email: email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedResume(t *testing.T, store *ResumeStore, userID uint, title string) *Resume {
	t.Helper()
	model := Resume{
		Title:      title,
		TemplateID: "classic",
		Content:    datatypes.JSON(`{}`),
		UserID:     userID,
	}
	if err := store.Create(context.Background(), &model); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return &model
}

func TestResumeStore_GetScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	store := NewResumeStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	model := seedResume(t, store, owner.ID, "mine")

	if _, err := store.Get(ctx, model.ID, owner.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}

	if _, err := store.Get(ctx, model.ID, other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}

	if _, err := store.Get(ctx, 9999, owner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestResumeStore_UpdateIgnoresUserID(t *testing.T) {
	db := newTestDB(t)
	store := NewResumeStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	model := seedResume(t, store, owner.ID, "mine")

	updated, err := store.Update(ctx, model.ID, owner.ID, map[string]any{
		"title":   "renamed",
		"user_id": owner.ID + 100,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Title != "renamed" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.UserID != owner.ID {
		t.Fatalf("user_id must be immutable, got %d", updated.UserID)
	}
}

func TestResumeStore_UpdateIsFullReplace(t *testing.T) {
	db := newTestDB(t)
	store := NewResumeStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	model := seedResume(t, store, owner.ID, "mine")

	first := datatypes.JSON(`{"personal_info":{"full_name":"Ada"},"sections":{},"settings":{}}`)
	second := datatypes.JSON(`{"personal_info":{"full_name":"Grace"},"sections":{},"settings":{}}`)

	if _, err := store.Update(ctx, model.ID, owner.ID, map[string]any{"content": first}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	updated, err := store.Update(ctx, model.ID, owner.ID, map[string]any{"content": second})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	var decoded struct {
		PersonalInfo struct {
			FullName string `json:"full_name"`
		} `json:"personal_info"`
	}
	if err := json.Unmarshal(updated.Content, &decoded); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if decoded.PersonalInfo.FullName != "Grace" {
		t.Fatalf("last write must win, got %q", decoded.PersonalInfo.FullName)
	}
	if model.CreatedAt.After(updated.UpdatedAt) {
		t.Fatalf("updated_at must not move backwards")
	}
}

func TestResumeStore_CountForUser(t *testing.T) {
	db := newTestDB(t)
	store := NewResumeStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	seedResume(t, store, owner.ID, "one")
	seedResume(t, store, owner.ID, "two")
	seedResume(t, store, other.ID, "theirs")

	count, err := store.CountForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
}

func TestResumeStore_FindActiveOrLatestFallsBack(t *testing.T) {
	db := newTestDB(t)
	store := NewResumeStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	first := seedResume(t, store, owner.ID, "first")
	second := seedResume(t, store, owner.ID, "second")

	// 激活指针指向已删除的简历时回落到最近一份，并修正指针。
	if err := store.SetActiveResume(ctx, owner.ID, &first.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := store.Delete(ctx, first.ID, owner.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := store.FindActiveOrLatest(ctx, owner.ID)
	if err != nil {
		t.Fatalf("find active or latest: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("expected fallback to %d, got %d", second.ID, got.ID)
	}

	var user User
	if err := db.First(&user, owner.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.ActiveResumeID == nil || *user.ActiveResumeID != second.ID {
		t.Fatalf("active pointer not corrected: %v", user.ActiveResumeID)
	}
}

func TestResumeStore_FindActiveOrLatestNoResumes(t *testing.T) {
	db := newTestDB(t)
	store := NewResumeStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")

	if _, err := store.FindActiveOrLatest(ctx, owner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResumeStore_AssignLatestAsActiveClearsWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	store := NewResumeStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	model := seedResume(t, store, owner.ID, "only")

	if err := store.SetActiveResume(ctx, owner.ID, &model.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := store.Delete(ctx, model.ID, owner.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.AssignLatestAsActive(ctx, owner.ID); err != nil {
		t.Fatalf("assign latest: %v", err)
	}

	var user User
	if err := db.First(&user, owner.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.ActiveResumeID != nil {
		t.Fatalf("active pointer must be cleared, got %d", *user.ActiveResumeID)
	}
}

func TestResumeStore_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	store := NewResumeStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	seedResume(t, store, owner.ID, "first")
	seedResume(t, store, owner.ID, "second")

	items, err := store.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].CreatedAt.Before(items[1].CreatedAt) {
		t.Fatalf("list must be newest first")
	}
}
