package main

import (
	"fmt"

	"github.com/blogly/internal/config"
	"github.com/blogly/internal/db"
	"github.com/blogly/internal/logging"
	"github.com/blogly/internal/service"
	"gorm.io/gorm"
)

type seedPost struct {
	author string
	title  string
	body   string
	tags   []string
}

var (
	seedUsers = []service.UserInput{
		{FirstName: "John", LastName: "Smith"},
		{FirstName: "Jane", LastName: "Doe"},
	}
	seedTagNames = []string{"Random", "Fun", "Wow", "Cool"}
	seedPosts    = []seedPost{
		{author: "John Smith", title: "Hello World", body: "Hello World!", tags: []string{"Random"}},
		{author: "Jane Doe", title: "Another Post", body: "Another post here.", tags: []string{"Fun"}},
		{author: "John Smith", title: "Blah", body: "Blah blah blah", tags: []string{"Wow"}},
	}
)

func main() {
	cfg := config.Load()
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// 初始化数据库
	gdb, err := db.Open(db.Options{
		Driver: cfg.DatabaseDriver,
		URL:    cfg.DatabaseURL,
		Path:   cfg.DatabasePath,
		SQLLog: cfg.SQLLog,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("数据库初始化失败")
	}
	defer db.Close(gdb)

	if err := seed(gdb, cfg.DefaultImageURL); err != nil {
		logger.Fatal().Err(err).Msg("写入示例数据失败")
	}

	logger.Info().
		Int("users", len(seedUsers)).
		Int("tags", len(seedTagNames)).
		Int("posts", len(seedPosts)).
		Msg("示例数据写入完成")
}

// seed 清空全部表后写入示例用户、标签与文章。
func seed(gdb *gorm.DB, defaultImageURL string) error {
	if err := db.Reset(gdb); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}

	users := service.NewUserService(gdb, defaultImageURL)
	posts := service.NewPostService(gdb)
	tags := service.NewTagService(gdb)

	authors := make(map[string]uint, len(seedUsers))
	for _, input := range seedUsers {
		user, err := users.Create(input)
		if err != nil {
			return err
		}
		authors[user.FullName()] = user.ID
	}

	tagIDs := make(map[string]uint, len(seedTagNames))
	for _, name := range seedTagNames {
		tag, err := tags.Create(name)
		if err != nil {
			return err
		}
		tagIDs[tag.Name] = tag.ID
	}

	for _, p := range seedPosts {
		ids := make([]uint, 0, len(p.tags))
		for _, name := range p.tags {
			ids = append(ids, tagIDs[name])
		}
		if _, err := posts.Create(authors[p.author], service.PostInput{Title: p.title, Content: p.body, TagIDs: ids}); err != nil {
			return fmt.Errorf("seed post %q: %w", p.title, err)
		}
	}
	return nil
}
