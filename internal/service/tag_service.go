package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blogly/internal/db"
	"gorm.io/gorm"
)

// TagService wraps tag related operations.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// List returns all tags ordered by name.
func (s *TagService) List() ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.Order("name asc").Order("id asc").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Get fetches a tag by id.
func (s *TagService) Get(id uint) (*db.Tag, error) {
	return findTag(s.db, id)
}

// GetWithPosts fetches a tag and the posts associated with it, newest first.
func (s *TagService) GetWithPosts(id uint) (*db.Tag, error) {
	tag, err := findTag(s.db, id)
	if err != nil {
		return nil, err
	}

	var posts []db.Post
	if err := s.db.Model(&db.Post{}).
		Preload("Author").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tag.ID).
		Order("posts.created_at desc").
		Order("posts.id desc").
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("load posts of tag %d: %w", tag.ID, err)
	}
	tag.Posts = posts
	return tag, nil
}

// Create inserts a new tag with unique name.
func (s *TagService) Create(name string) (*db.Tag, error) {
	name = strings.TrimSpace(name)
	if err := requireField("name", name); err != nil {
		return nil, err
	}

	tag := db.Tag{Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureTagNameFree(tx, name, 0); err != nil {
			return err
		}
		return tx.Create(&tag).Error
	})
	if err != nil {
		return nil, translateTagError("create tag", err)
	}
	return &tag, nil
}

// Update changes the tag name while keeping uniqueness.
func (s *TagService) Update(id uint, name string) (*db.Tag, error) {
	name = strings.TrimSpace(name)

	var tag *db.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := findTag(tx, id)
		if err != nil {
			return err
		}
		if err := requireField("name", name); err != nil {
			return err
		}
		if err := ensureTagNameFree(tx, name, existing.ID); err != nil {
			return err
		}

		existing.Name = name
		if err := tx.Model(existing).Update("name", name).Error; err != nil {
			return err
		}
		tag = existing
		return nil
	})
	if err != nil {
		return nil, translateTagError("update tag", err)
	}
	return tag, nil
}

// Delete removes a tag and its post associations; the posts themselves stay.
func (s *TagService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tag, err := findTag(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("tag_id = ?", tag.ID).Delete(&db.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Tag{}, tag.ID).Error
	})
	return wrapUnlessKnown("delete tag", err)
}

func ensureTagNameFree(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := tx.Model(&db.Tag{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrTagExists
	}
	return nil
}

func findTag(tx *gorm.DB, id uint) (*db.Tag, error) {
	var tag db.Tag
	if err := tx.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("load tag %d: %w", id, err)
	}
	return &tag, nil
}

// translateTagError maps a unique index violation from the store onto ErrTagExists.
func translateTagError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrTagExists
	}
	return wrapUnlessKnown(op, err)
}
