package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
// 行在用户首次携带鉴权协作方令牌访问时创建，此后本服务不修改账号资料。
type User struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;size:255"`
	DisplayName    string `gorm:"size:128"`
	AvatarKey      string `gorm:"size:512"`
	ActiveResumeID *uint
	Resumes        []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户创建的简历。
// Content 以 JSONB 整体存储结构化内容；user_id 创建后不可变更。
type Resume struct {
	gorm.Model
	Title      string         `gorm:"size:255"`
	TemplateID string         `gorm:"size:64"`
	Content    datatypes.JSON `gorm:"type:jsonb"`
	UserID     uint           `gorm:"index"`
	User       User           `gorm:"constraint:OnDelete:CASCADE"`
	ExportKey  string         `gorm:"size:512"`
}

// ContactMessage 保存站内联系表单的留言。
type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"size:128"`
	Email   string `gorm:"size:255"`
	Reason  string `gorm:"size:64"`
	Subject string `gorm:"size:255"`
	Message string `gorm:"type:text"`
}

// NewsletterSubscriber 保存订阅邮箱，重复订阅视为成功。
type NewsletterSubscriber struct {
	gorm.Model
	Email string `gorm:"uniqueIndex;size:255"`
}
