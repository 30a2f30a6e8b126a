package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogly/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostService wraps post related database operations.
type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title   string
	Content string
	TagIDs  []uint
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb, now: time.Now}
}

// Recent returns the newest posts with their authors, at most limit of them.
func (s *PostService) Recent(limit int) ([]db.Post, error) {
	if limit <= 0 {
		limit = 5
	}

	var posts []db.Post
	if err := s.db.Preload("Author").
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	return posts, nil
}

// Get fetches a post by id with author and tags loaded.
func (s *PostService) Get(id uint) (*db.Post, error) {
	post, err := findPost(s.db.Preload("Author"), id)
	if err != nil {
		return nil, err
	}

	tags, err := tagsForPost(s.db, post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return post, nil
}

// Create persists a post owned by userID together with exactly the selected tags.
func (s *PostService) Create(userID uint, input PostInput) (*db.Post, error) {
	title, content, err := normalizePostInput(input)
	if err != nil {
		return nil, err
	}

	post := db.Post{
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC(),
		CreatedBy: userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, userID); err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return ErrAuthorNotFound
			}
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&post).Error; err != nil {
			return err
		}

		tags, err := replaceTags(tx, post.ID, input.TagIDs)
		if err != nil {
			return err
		}
		post.Tags = tags
		return nil
	})
	if err != nil {
		return nil, wrapUnlessKnown("create post", err)
	}
	return &post, nil
}

// Update overwrites title and content and replaces the tag set wholesale.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var post *db.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := findPost(tx, id)
		if err != nil {
			return err
		}
		title, content, err := normalizePostInput(input)
		if err != nil {
			return err
		}

		existing.Title = title
		existing.Content = content
		if err := tx.Model(existing).
			Select("title", "content").
			Updates(existing).Error; err != nil {
			return err
		}

		tags, err := replaceTags(tx, existing.ID, input.TagIDs)
		if err != nil {
			return err
		}
		existing.Tags = tags
		post = existing
		return nil
	})
	if err != nil {
		return nil, wrapUnlessKnown("update post", err)
	}
	return post, nil
}

// Delete removes a post and its tag associations, returning the deleted post.
func (s *PostService) Delete(id uint) (*db.Post, error) {
	var post *db.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := findPost(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", existing.ID).Delete(&db.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&db.Post{}, existing.ID).Error; err != nil {
			return err
		}
		post = existing
		return nil
	})
	if err != nil {
		return nil, wrapUnlessKnown("delete post", err)
	}
	return post, nil
}

// replaceTags sets the post's tag membership to exactly tagIDs.
func replaceTags(tx *gorm.DB, postID uint, tagIDs []uint) ([]db.Tag, error) {
	ids := uniqueIDs(tagIDs)

	var tags []db.Tag
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Order("name asc").Find(&tags).Error; err != nil {
			return nil, err
		}
		if len(tags) != len(ids) {
			return nil, ErrUnknownTag
		}
	}

	if err := tx.Where("post_id = ?", postID).Delete(&db.PostTag{}).Error; err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []db.Tag{}, nil
	}

	links := make([]db.PostTag, 0, len(ids))
	for _, id := range ids {
		links = append(links, db.PostTag{PostID: postID, TagID: id})
	}
	if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func tagsForPost(tx *gorm.DB, postID uint) ([]db.Tag, error) {
	var tags []db.Tag
	if err := tx.Model(&db.Tag{}).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name asc").
		Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("load tags of post %d: %w", postID, err)
	}
	return tags, nil
}

func findPost(tx *gorm.DB, id uint) (*db.Post, error) {
	var post db.Post
	if err := tx.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("load post %d: %w", id, err)
	}
	return &post, nil
}

func normalizePostInput(input PostInput) (string, string, error) {
	title := strings.TrimSpace(input.Title)
	if err := requireField("title", title); err != nil {
		return "", "", err
	}
	if err := limitField("title", title, db.TitleMaxLength); err != nil {
		return "", "", err
	}
	if err := requireField("content", strings.TrimSpace(input.Content)); err != nil {
		return "", "", err
	}
	return title, input.Content, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
