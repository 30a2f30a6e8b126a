package db

import "time"

// TitleMaxLength 对应 title 列宽。
const TitleMaxLength = 50

// Post 定义了文章模型
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:50;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	CreatedBy uint      `gorm:"column:created_by;not null;index"`
	Author    *User     `gorm:"foreignKey:CreatedBy"`
	// Tags 通过 post_tags 显式查询填充，不由 gorm 关联维护。
	Tags []Tag `gorm:"-"`
}

// HasTag reports whether the loaded tag set contains id.
func (p Post) HasTag(id uint) bool {
	for _, tag := range p.Tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}
