package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 存储层对外只暴露两类失败：目标行不存在（或属于他人），
// 以及底层存储不可用。调用方据此决定 404 还是 503，不在这里重试。
var (
	ErrNotFound           = errors.New("resume not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ResumeSummary 是列表接口返回的摘要行。
type ResumeSummary struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ResumeStore 封装简历行的持久化操作，所有查询都以 user_id 过滤，
// 跨用户访问在这一层被拒绝（表现为 ErrNotFound）。
type ResumeStore struct {
	db *gorm.DB
}

// NewResumeStore 构造 ResumeStore。
func NewResumeStore(db *gorm.DB) *ResumeStore {
	return &ResumeStore{db: db}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}

// List 返回用户全部简历的摘要，按创建时间倒序。
func (s *ResumeStore) List(ctx context.Context, userID uint) ([]ResumeSummary, error) {
	var resumes []Resume
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error; err != nil {
		return nil, storageErr("list resumes", err)
	}

	items := make([]ResumeSummary, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, ResumeSummary{
			ID:         r.ID,
			Title:      r.Title,
			TemplateID: r.TemplateID,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return items, nil
}

// Get 返回指定简历，属于其他用户时同样返回 ErrNotFound。
func (s *ResumeStore) Get(ctx context.Context, id, userID uint) (*Resume, error) {
	var resume Resume
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&resume).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, storageErr("get resume", err)
	}
	return &resume, nil
}

// Create 插入新简历并回填生成的 ID。
func (s *ResumeStore) Create(ctx context.Context, resume *Resume) error {
	if err := s.db.WithContext(ctx).Create(resume).Error; err != nil {
		return storageErr("create resume", err)
	}
	return nil
}

// Update 以字段集覆盖指定简历并返回更新后的行。
// Content 是整体替换（后写覆盖先写，不做字段级合并）；user_id 不接受修改。
func (s *ResumeStore) Update(ctx context.Context, id, userID uint, fields map[string]any) (*Resume, error) {
	delete(fields, "user_id")

	resume, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(resume).Updates(fields).Error; err != nil {
		return nil, storageErr("update resume", err)
	}
	if err := s.db.WithContext(ctx).First(resume, resume.ID).Error; err != nil {
		return nil, storageErr("reload resume", err)
	}
	return resume, nil
}

// Delete 删除指定简历。
func (s *ResumeStore) Delete(ctx context.Context, id, userID uint) error {
	resume, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&Resume{}, resume.ID).Error; err != nil {
		return storageErr("delete resume", err)
	}
	return nil
}

// CountForUser 统计用户持有的简历数量，用于配额检查。
func (s *ResumeStore) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&Resume{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, storageErr("count resumes", err)
	}
	return count, nil
}

// SetExportKey 记录最近一次导出快照的对象键。
func (s *ResumeStore) SetExportKey(ctx context.Context, id uint, key string) error {
	if err := s.db.WithContext(ctx).
		Model(&Resume{}).
		Where("id = ?", id).
		Update("export_key", key).Error; err != nil {
		return storageErr("set export key", err)
	}
	return nil
}

// SetActiveResume 记录用户当前正在编辑的简历。
func (s *ResumeStore) SetActiveResume(ctx context.Context, userID uint, resumeID *uint) error {
	var value any
	if resumeID != nil {
		value = *resumeID
	}
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Update("active_resume_id", value).Error; err != nil {
		return storageErr("set active resume", err)
	}
	return nil
}

// FindActiveOrLatest 返回用户当前激活的简历；激活简历缺失时回落到最近更新的一份。
func (s *ResumeStore) FindActiveOrLatest(ctx context.Context, userID uint) (*Resume, error) {
	var user User
	err := s.db.WithContext(ctx).
		Select("id", "active_resume_id").
		First(&user, userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, storageErr("load user", err)
	}

	if user.ActiveResumeID != nil {
		var resume Resume
		err := s.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", *user.ActiveResumeID, userID).
			First(&resume).Error
		if err == nil {
			return &resume, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storageErr("load active resume", err)
		}
	}

	var latest Resume
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		First(&latest).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		_ = s.SetActiveResume(ctx, userID, nil)
		return nil, ErrNotFound
	case err != nil:
		return nil, storageErr("load latest resume", err)
	}

	if err := s.SetActiveResume(ctx, userID, &latest.ID); err != nil {
		return nil, err
	}
	return &latest, nil
}

// AssignLatestAsActive 在删除后把最近更新的简历设为激活，没有则清空。
func (s *ResumeStore) AssignLatestAsActive(ctx context.Context, userID uint) error {
	var resume Resume
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		First(&resume).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.SetActiveResume(ctx, userID, nil)
	case err != nil:
		return storageErr("load latest resume", err)
	default:
		return s.SetActiveResume(ctx, userID, &resume.ID)
	}
}
