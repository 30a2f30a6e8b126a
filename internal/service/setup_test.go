package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/blogly/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(db.Options{Driver: db.DriverSQLite, URL: dsn})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	gdb.Logger = logger.Default.LogMode(logger.Silent)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, first, last string) db.User {
	t.Helper()
	user := db.User{FirstName: first, LastName: last, ImageURL: "https://example.com/avatar.png"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedTags(t *testing.T, gdb *gorm.DB, names ...string) []db.Tag {
	t.Helper()
	tags := make([]db.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, db.Tag{Name: name})
	}
	if err := gdb.Create(&tags).Error; err != nil {
		t.Fatalf("failed to seed tags: %v", err)
	}
	return tags
}

func countRows(t *testing.T, gdb *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	q := gdb.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

type testClock struct {
	current time.Time
}

// fixedClock returns a clock that advances one minute on every call.
func fixedClock(t *testing.T) *testClock {
	t.Helper()
	return &testClock{current: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) next() time.Time {
	c.current = c.current.Add(time.Minute)
	return c.current
}
