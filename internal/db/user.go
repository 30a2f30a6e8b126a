package db

// 与列宽保持一致，服务层据此校验输入长度。
const (
	NameMaxLength     = 50
	ImageURLMaxLength = 500
)

// User 定义了用户模型；删除用户时其文章由服务层显式级联删除。
type User struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:50;not null"`
	LastName  string `gorm:"size:50;not null"`
	ImageURL  string `gorm:"size:500;not null"`
	Posts     []Post `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
}

// FullName 返回 "名 姓" 形式的全名，不落库。
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
