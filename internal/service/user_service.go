package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blogly/internal/config"
	"github.com/blogly/internal/db"
	"gorm.io/gorm"
)

// UserService wraps user related operations.
type UserService struct {
	db              *gorm.DB
	defaultImageURL string
}

// UserInput represents the submitted user form.
type UserInput struct {
	FirstName string
	LastName  string
	ImageURL  string
}

// NewUserService creates a UserService; a blank defaultImageURL falls back to the built-in placeholder.
func NewUserService(gdb *gorm.DB, defaultImageURL string) *UserService {
	defaultImageURL = strings.TrimSpace(defaultImageURL)
	if defaultImageURL == "" {
		defaultImageURL = config.DefaultImageURL
	}
	return &UserService{db: gdb, defaultImageURL: defaultImageURL}
}

// List returns all users ordered by last name then first name.
func (s *UserService) List() ([]db.User, error) {
	var users []db.User
	if err := s.db.Order("last_name asc").Order("first_name asc").Order("id asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get fetches a user by id.
func (s *UserService) Get(id uint) (*db.User, error) {
	return findUser(s.db, id)
}

// GetWithPosts fetches a user together with its posts, newest first.
func (s *UserService) GetWithPosts(id uint) (*db.User, error) {
	var user db.User
	err := s.db.
		Preload("Posts", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at desc").Order("id desc")
		}).
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return &user, nil
}

// Create inserts a new user.
func (s *UserService) Create(input UserInput) (*db.User, error) {
	user := db.User{}
	if err := s.apply(&user, input); err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Posts").Create(&user).Error
	}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update overwrites the names and image of an existing user.
func (s *UserService) Update(id uint, input UserInput) (*db.User, error) {
	var user *db.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := findUser(tx, id)
		if err != nil {
			return err
		}
		if err := s.apply(existing, input); err != nil {
			return err
		}
		user = existing
		return tx.Model(existing).
			Select("first_name", "last_name", "image_url").
			Updates(existing).Error
	})
	if err != nil {
		return nil, wrapUnlessKnown("update user", err)
	}
	return user, nil
}

// Delete removes a user, its posts and those posts' tag associations in one transaction.
func (s *UserService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, id)
		if err != nil {
			return err
		}

		postIDs := tx.Model(&db.Post{}).Select("id").Where("created_by = ?", user.ID)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&db.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("created_by = ?", user.ID).Delete(&db.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.User{}, user.ID).Error
	})
	return wrapUnlessKnown("delete user", err)
}

func (s *UserService) apply(user *db.User, input UserInput) error {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if err := requireField("first_name", firstName); err != nil {
		return err
	}
	if err := requireField("last_name", lastName); err != nil {
		return err
	}
	if err := limitField("first_name", firstName, db.NameMaxLength); err != nil {
		return err
	}
	if err := limitField("last_name", lastName, db.NameMaxLength); err != nil {
		return err
	}

	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		imageURL = s.defaultImageURL
	}
	if err := limitField("image_url", imageURL, db.ImageURLMaxLength); err != nil {
		return err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.ImageURL = imageURL
	return nil
}

func findUser(tx *gorm.DB, id uint) (*db.User, error) {
	var user db.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return &user, nil
}

// wrapUnlessKnown adds context to store errors while keeping domain errors untouched.
func wrapUnlessKnown(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConstraintViolation), errors.Is(err, ErrReferentialViolation):
		return err
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
