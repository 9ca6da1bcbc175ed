// Package export 组装交给外部渲染方的导出文档。
// 文档包含内容、解析后的模板配置与照片限时链接；PDF 编码不在本服务内。
package export

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resumeforge/internal/database"
	"resumeforge/internal/errcode"
	"resumeforge/internal/resume"
	"resumeforge/internal/storage"
	"resumeforge/internal/template"
)

// Warning 标记可降级的资源问题，渲染方据此提示用户。
type Warning struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Key     string `json:"key,omitempty"`
}

// Document 是一次导出的完整数据。
type Document struct {
	ResumeID    uint            `json:"resume_id"`
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generated_at"`
	Content     resume.Content  `json:"content"`
	Template    template.Config `json:"template"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	Warnings    []Warning       `json:"warnings,omitempty"`
}

// BuildDocument 解码简历内容并解析模板与照片链接。
// 照片对象缺失降级为 warning(4004)；Bucket 缺失与其他存储错误原样上抛。
func BuildDocument(ctx context.Context, storageClient *storage.Client, model database.Resume) (Document, error) {
	var content resume.Content
	if err := json.Unmarshal(model.Content, &content); err != nil {
		return Document{}, errors.New("failed to decode resume content")
	}

	doc := Document{
		ResumeID:    model.ID,
		Title:       model.Title,
		GeneratedAt: time.Now().UTC(),
		Content:     content,
		Template:    template.Get(model.TemplateID),
	}

	photoKey := content.PersonalInfo.PhotoKey
	if !content.Settings.ShowPhoto || photoKey == "" || storageClient == nil {
		return doc, nil
	}

	if _, err := storageClient.StatObject(ctx, photoKey); err != nil {
		if storage.IsNoSuchBucket(err) {
			return Document{}, err
		}
		if storage.IsNoSuchKey(err) {
			doc.Warnings = append(doc.Warnings, Warning{
				Code:    errcode.ResourceMissing,
				Message: "photo object missing, rendered without photo",
				Key:     photoKey,
			})
			return doc, nil
		}
		return Document{}, err
	}

	url, err := storageClient.GeneratePresignedURL(ctx, photoKey, 10*time.Minute)
	if err != nil {
		return Document{}, err
	}
	doc.PhotoURL = url
	return doc, nil
}
