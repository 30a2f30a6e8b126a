package db

// Tag 定义了标签模型
type Tag struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"type:text;uniqueIndex;not null"`
	Posts []Post `gorm:"-"`
}

// PostTag 是文章与标签的联结记录，(post_id, tag_id) 组成主键。
type PostTag struct {
	PostID uint  `gorm:"primaryKey;autoIncrement:false"`
	TagID  uint  `gorm:"primaryKey;autoIncrement:false"`
	Post   *Post `gorm:"constraint:OnDelete:CASCADE"`
	Tag    *Tag  `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName pins the join table name.
func (PostTag) TableName() string {
	return "post_tags"
}
