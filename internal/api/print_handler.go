package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/export"
	"resumeforge/internal/storage"
)

// PrintHandler 供渲染服务拉取打印数据，走内部密钥而非用户令牌。
type PrintHandler struct {
	db      *gorm.DB
	storage *storage.Client
	logger  *slog.Logger
}

// NewPrintHandler 构造 PrintHandler。
func NewPrintHandler(db *gorm.DB, storageClient *storage.Client, logger *slog.Logger) *PrintHandler {
	return &PrintHandler{db: db, storage: storageClient, logger: logger}
}

// GetPrintData 返回渲染所需的 JSON 数据。
// 照片对象缺失降级为 warning(4004)；Bucket 缺失视为系统错误。
func (h *PrintHandler) GetPrintData(c *gin.Context) {
	id, err := parseResumeID(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	ctx := c.Request.Context()

	var model database.Resume
	if err := h.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "resume not found")
			return
		}
		StorageUnavailable(c)
		return
	}

	doc, err := export.BuildDocument(ctx, h.storage, model)
	if err != nil {
		middleware.LoggerFromContext(c).Error("build print data failed", slog.Any("error", err))
		Internal(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, doc)
}
