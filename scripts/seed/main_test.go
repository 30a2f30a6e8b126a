package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/blogly/internal/config"
	"github.com/blogly/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:seed-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(db.Options{Driver: db.DriverSQLite, URL: dsn})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	gdb.Logger = logger.Default.LogMode(logger.Silent)

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}

func TestSeedCreatesSampleData(t *testing.T) {
	gdb := setupSeedTestDB(t)

	if err := seed(gdb, config.DefaultImageURL); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	counts := map[string]struct {
		model any
		want  int64
	}{
		"users":     {&db.User{}, 2},
		"tags":      {&db.Tag{}, 4},
		"posts":     {&db.Post{}, 3},
		"post_tags": {&db.PostTag{}, 3},
	}
	for name, tc := range counts {
		var got int64
		if err := gdb.Model(tc.model).Count(&got).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if got != tc.want {
			t.Fatalf("expected %d %s, got %d", tc.want, name, got)
		}
	}

	var john db.User
	if err := gdb.Where("first_name = ? AND last_name = ?", "John", "Smith").First(&john).Error; err != nil {
		t.Fatalf("load John Smith: %v", err)
	}
	if john.ImageURL != config.DefaultImageURL {
		t.Fatalf("expected default image, got %q", john.ImageURL)
	}

	var owned int64
	gdb.Model(&db.Post{}).Where("created_by = ?", john.ID).Count(&owned)
	if owned != 2 {
		t.Fatalf("expected John Smith to own 2 posts, got %d", owned)
	}
}

func TestSeedIsRepeatable(t *testing.T) {
	gdb := setupSeedTestDB(t)

	for i := 0; i < 2; i++ {
		if err := seed(gdb, config.DefaultImageURL); err != nil {
			t.Fatalf("seed run %d failed: %v", i+1, err)
		}
	}

	var tags int64
	gdb.Model(&db.Tag{}).Count(&tags)
	if tags != 4 {
		t.Fatalf("expected reset to avoid duplicates, got %d tags", tags)
	}
}
