package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"resumeforge/internal/database"
)

// photoStorage 抽象照片对象的读写，便于测试替换。
type photoStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// PhotoHandler 处理简历照片的上传与访问。
// 每个用户只保留一张照片，新上传会替换旧对象。
type PhotoHandler struct {
	Users         *database.UserStore
	Storage       photoStorage
	Logger        *slog.Logger
	RedisClient   redisRateCounter
	ClamdAddr     string
	MaxBytes      int64
	UploadsPerDay int
	MIMEWhitelist []string
}

// UploadPhoto 接收照片文件并上传到对象存储。
// 配额计数放在尺寸与类型校验之后，被拒绝的请求不消耗当日额度。
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if h.MaxBytes > 0 && file.Size > h.MaxBytes {
		BadRequest(c, "file too large")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !h.mimeAllowed(contentType) {
		BadRequest(c, "unsupported file type")
		return
	}

	if h.RedisClient != nil && h.UploadsPerDay > 0 {
		count, err := countDailyPhotoUpload(ctx, h.RedisClient, userID)
		if err != nil {
			h.Logger.Warn("photo upload rate counter failed", slog.Any("error", err))
		} else if count > int64(h.UploadsPerDay) {
			Error(c, http.StatusTooManyRequests, "daily upload limit reached")
			return
		}
	}

	if h.ClamdAddr != "" {
		clean, err := h.scanUpload(file)
		if err != nil {
			h.Logger.Error("scan photo failed", slog.Any("error", err))
			Internal(c, "failed to scan file")
			return
		}
		if !clean {
			BadRequest(c, "malicious file detected")
			return
		}
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	defer reader.Close()

	objectKey := fmt.Sprintf("profile-photos/%d/%s", userID, uuid.NewString())
	if _, err := h.Storage.UploadFile(ctx, objectKey, reader, file.Size, contentType); err != nil {
		h.Logger.Error("upload photo failed", slog.Any("error", err))
		Internal(c, "failed to upload photo")
		return
	}

	previousKey, err := h.Users.GetAvatarKey(ctx, userID)
	if err != nil {
		h.Logger.Warn("load previous photo key failed", slog.Any("error", err))
	}

	if err := h.Users.SetAvatarKey(ctx, userID, objectKey); err != nil {
		h.Logger.Error("record photo key failed", slog.Any("error", err))
		StorageUnavailable(c)
		return
	}

	// 旧照片删除失败不影响本次上传，对象最终由生命周期策略清理。
	if previousKey != "" && previousKey != objectKey {
		if err := h.Storage.DeleteObject(ctx, previousKey); err != nil {
			h.Logger.Warn("delete previous photo failed",
				slog.String("object_key", previousKey),
				slog.Any("error", err),
			)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"object_key": objectKey})
}

// scanUpload 把文件流交给 clamd 扫描，返回文件是否干净。
func (h *PhotoHandler) scanUpload(file *multipart.FileHeader) (bool, error) {
	reader, err := file.Open()
	if err != nil {
		return false, fmt.Errorf("open file: %w", err)
	}

	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := clamd.NewClamd(h.ClamdAddr).ScanStream(reader, abortChan)
	reader.Close()
	if err != nil {
		return false, fmt.Errorf("scan stream: %w", err)
	}

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return false, nil
		}
	}
	return true, nil
}

// GetPhotoURL 返回当前照片的限时访问链接。
func (h *PhotoHandler) GetPhotoURL(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	key, err := h.Users.GetAvatarKey(c.Request.Context(), userID)
	if err != nil {
		StorageUnavailable(c)
		return
	}
	if key == "" {
		NotFound(c, "photo not uploaded")
		return
	}

	url, err := h.Storage.GeneratePresignedURL(c.Request.Context(), key, 10*time.Minute)
	if err != nil {
		Internal(c, "failed to generate photo url")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *PhotoHandler) mimeAllowed(contentType string) bool {
	if len(h.MIMEWhitelist) == 0 {
		return true
	}
	for _, allowed := range h.MIMEWhitelist {
		if contentType == allowed {
			return true
		}
	}
	return false
}
