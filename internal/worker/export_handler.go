package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumeforge/internal/database"
	"resumeforge/internal/errcode"
	"resumeforge/internal/export"
	"resumeforge/internal/storage"
	"resumeforge/internal/tasks"
)

// ExportTaskHandler 负责消费导出快照任务：组装导出文档、
// 上传对象存储、更新简历行并通知前端。
type ExportTaskHandler struct {
	db          *gorm.DB
	store       *database.ResumeStore
	storage     *storage.Client
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(db *gorm.DB, storageClient *storage.Client, redisClient *redis.Client, logger *slog.Logger) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:          db,
		store:       database.NewResumeStore(db),
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ExportSnapshotPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("starting export snapshot task")

	var model database.Resume
	if err := h.db.WithContext(ctx).First(&model, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(model.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}
		notify := ExportNotifyMessage{
			Status:        "error",
			ResumeID:      model.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishNotify(ctx, model.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	doc, err := export.BuildDocument(ctx, h.storage, model)
	if err != nil {
		log.Error("build export document failed", slog.Any("error", err))
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		log.Error("marshal export document failed", slog.Any("error", err))
		return err
	}

	objectKey := fmt.Sprintf("exports/%d/%d/%s.json", model.UserID, model.ID, uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectKey, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		log.Error("upload export snapshot failed", slog.Any("error", err))
		return err
	}

	previousKey := model.ExportKey
	if err := h.store.SetExportKey(ctx, model.ID, objectKey); err != nil {
		log.Error("record export key failed", slog.Any("error", err))
		return err
	}

	// 旧快照删除失败不影响本次导出。
	if previousKey != "" && previousKey != objectKey {
		if err := h.storage.DeleteObject(ctx, previousKey); err != nil {
			log.Warn("delete previous export failed",
				slog.String("object_key", previousKey),
				slog.Any("error", err),
			)
		}
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		ResumeID:      model.ID,
		CorrelationID: payload.CorrelationID,
		ObjectKey:     objectKey,
		ErrorCode:     errcode.OK,
	}
	if len(doc.Warnings) > 0 {
		notify.ErrorCode = errcode.ResourceMissing
		notify.ErrorMessage = doc.Warnings[0].Message
		notify.MissingKey = doc.Warnings[0].Key
		log.Warn("export generated with missing assets", slog.String("missing_key", doc.Warnings[0].Key))
	}
	if err := h.publishNotify(ctx, model.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("export snapshot completed", slog.String("object_key", objectKey))
	return nil
}

func (h *ExportTaskHandler) publishNotify(ctx context.Context, userID uint, msg ExportNotifyMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notify message: %w", err)
	}
	if err := h.redisClient.Publish(ctx, tasks.NotifyChannel(userID), payload).Err(); err != nil {
		return fmt.Errorf("publish notify message: %w", err)
	}
	return nil
}

// isFinalAsynqAttempt 判断当前是否最后一次重试，只有最终失败才通知前端。
func isFinalAsynqAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return true
	}
	return retried >= maxRetry
}
