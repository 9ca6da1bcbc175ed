package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/editor"
	"resumeforge/internal/resume"
	"resumeforge/internal/storage"
	"resumeforge/internal/tasks"
	"resumeforge/internal/template"
)

// ResumeHandler 负责处理与简历相关的 API 请求。
type ResumeHandler struct {
	store       *database.ResumeStore
	asynqClient *asynq.Client
	storage     *storage.Client
	maxResumes  int
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(store *database.ResumeStore, asynqClient *asynq.Client, storageClient *storage.Client, maxResumes int) *ResumeHandler {
	return &ResumeHandler{
		store:       store,
		asynqClient: asynqClient,
		storage:     storageClient,
		maxResumes:  maxResumes,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

type createResumeRequest struct {
	Title      string         `json:"title" binding:"required"`
	TemplateID string         `json:"template_id"`
	Content    datatypes.JSON `json:"content"`
}

type updateResumeRequest struct {
	Title      string         `json:"title" binding:"required"`
	TemplateID string         `json:"template_id"`
	Content    datatypes.JSON `json:"content" binding:"required"`
}

type resumeResponse struct {
	ID         uint           `json:"id"`
	Title      string         `json:"title"`
	TemplateID string         `json:"template_id"`
	Content    datatypes.JSON `json:"content"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func newResumeResponse(r database.Resume) resumeResponse {
	return resumeResponse{
		ID:         r.ID,
		Title:      r.Title,
		TemplateID: r.TemplateID,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidResumeID):
		BadRequest(c, "invalid resume id")
	case errors.Is(err, database.ErrNotFound):
		NotFound(c, "resume not found")
	case errors.Is(err, database.ErrStorageUnavailable):
		StorageUnavailable(c)
	default:
		Internal(c, "unexpected storage failure")
	}
}

func parseResumeID(idParam string) (uint, error) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidResumeID
	}
	return uint(id), nil
}

// CreateResume 保存一份新的简历，超过限额则提示升级。
// 未提供内容时以初始内容建档；未知模板回落到默认模板。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()

	count, err := h.store.CountForUser(ctx, userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if h.maxResumes > 0 && count >= int64(h.maxResumes) {
		Forbidden(c, "resume limit reached")
		return
	}

	content := req.Content
	if len(content) == 0 {
		data, err := json.Marshal(resume.Starter())
		if err != nil {
			Internal(c, "failed to build starter content")
			return
		}
		content = data
	} else if err := resume.ValidateContentJSON(content); err != nil {
		BadRequest(c, err.Error())
		return
	}

	model := database.Resume{
		Title:      req.Title,
		TemplateID: template.Get(req.TemplateID).ID,
		Content:    content,
		UserID:     userID,
	}
	if err := h.store.Create(ctx, &model); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.store.SetActiveResume(ctx, userID, &model.ID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(model))
}

// ListResumes 列出用户全部简历摘要。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	items, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetLatestResume 返回用户当前激活（或最近）的简历；还没有简历时返回初始内容。
func (h *ResumeHandler) GetLatestResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.store.FindActiveOrLatest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			data, merr := json.Marshal(resume.Starter())
			if merr != nil {
				Internal(c, "failed to build starter content")
				return
			}
			c.JSON(http.StatusOK, resumeResponse{
				Title:      defaultResumeTitle,
				TemplateID: template.Default().ID,
				Content:    data,
			})
			return
		}
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// GetResume 返回指定 ID 的简历并标记为当前正在编辑。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseResumeID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	ctx := c.Request.Context()
	model, err := h.store.Get(ctx, id, userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.store.SetActiveResume(ctx, userID, &model.ID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// UpdateResume 整体覆盖指定简历：后写覆盖先写，不做字段级合并。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseResumeID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := resume.ValidateContentJSON(req.Content); err != nil {
		BadRequest(c, err.Error())
		return
	}

	fields := map[string]any{
		"title":   req.Title,
		"content": req.Content,
	}
	if req.TemplateID != "" {
		fields["template_id"] = template.Get(req.TemplateID).ID
	}

	ctx := c.Request.Context()
	model, err := h.store.Update(ctx, id, userID, fields)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.store.SetActiveResume(ctx, userID, &model.ID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// EditSections 在服务端应用一批分区编辑命令，然后整体写回内容。
// 命令语义与前端编辑器一致：集合型分区重复 Add、未知 ID 的 update/remove 都静默忽略。
func (h *ResumeHandler) EditSections(c *gin.Context) {
	var commands []editor.Command
	if err := c.ShouldBindJSON(&commands); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if len(commands) == 0 {
		BadRequest(c, "no commands provided")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseResumeID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	ctx := c.Request.Context()
	model, err := h.store.Get(ctx, id, userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var content resume.Content
	if err := json.Unmarshal(model.Content, &content); err != nil {
		Internal(c, "failed to decode resume content")
		return
	}

	session := editor.NewSession(content, model.TemplateID)
	assigned := make([]string, 0, len(commands))
	for _, cmd := range commands {
		newID, err := session.Apply(cmd)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		if newID != "" {
			assigned = append(assigned, newID)
		}
	}

	data, err := json.Marshal(session.Current())
	if err != nil {
		Internal(c, "failed to encode resume content")
		return
	}

	model, err = h.store.Update(ctx, id, userID, map[string]any{"content": datatypes.JSON(data)})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resume":       newResumeResponse(*model),
		"assigned_ids": assigned,
	})
}

// GetInsights 返回建议性的完整度报告与推荐条目，从不阻止保存。
func (h *ResumeHandler) GetInsights(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseResumeID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	model, err := h.store.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var content resume.Content
	if err := json.Unmarshal(model.Content, &content); err != nil {
		Internal(c, "failed to decode resume content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completeness":      editor.Assess(content),
		"suggested_skills":  editor.SuggestedSkills(content),
		"suggested_hobbies": editor.SuggestedHobbies(content),
	})
}

// DeleteResume 删除指定简历，并尝试回落到最近一份。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseResumeID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Delete(ctx, id, userID); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.store.AssignLatestAsActive(ctx, userID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportResume 将导出快照任务入队并立即返回 202。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseResumeID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if _, err := h.store.Get(c.Request.Context(), id, userID); err != nil {
		respondStoreError(c, err)
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewExportSnapshotTask(id, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "export request accepted",
		"task_id": info.ID,
	})
}

// GetExportLink 生成导出快照的预签名下载链接。
func (h *ResumeHandler) GetExportLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	id, err := parseResumeID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	model, err := h.store.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if model.ExportKey == "" {
		Conflict(c, "export not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), model.ExportKey, 5*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

const defaultResumeTitle = "我的第一份简历"
