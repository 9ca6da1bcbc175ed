package api

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/tasks"
)

// ContactHandler 处理联系表单与邮件订阅两个公开端点。
// 两者都采取"不阻塞访客"策略：落库失败只记日志，对外仍然返回成功。
// 这一行为沿袭既有产品决策，是否应当改为硬失败仍有争议，改动前先对齐。
type ContactHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
}

// NewContactHandler 构造 ContactHandler，日志取自请求上下文。
func NewContactHandler(db *gorm.DB, asynqClient *asynq.Client) *ContactHandler {
	return &ContactHandler{
		db:          db,
		asynqClient: asynqClient,
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Reason  string `json:"reason"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r contactRequest) missingFields() []string {
	missing := make([]string, 0, 5)
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(r.Reason) == "" {
		missing = append(missing, "reason")
	}
	if strings.TrimSpace(r.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(r.Message) == "" {
		missing = append(missing, "message")
	}
	return missing
}

// SubmitContact 接收联系表单留言。
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if missing := req.missingFields(); len(missing) > 0 {
		BadRequest(c, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	log := middleware.LoggerFromContext(c)

	message := database.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Reason:  strings.TrimSpace(req.Reason),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&message).Error; err != nil {
		// 落库失败不反馈给访客，留言丢失风险由日志与告警兜底。
		log.Error("persist contact message failed", slog.Any("error", err))
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	h.enqueueNotify(c, log, func() (*asynq.Task, error) {
		return tasks.NewContactNotifyTask(tasks.ContactNotifyPayload{
			MessageID: message.ID,
			Name:      message.Name,
			Email:     message.Email,
			Reason:    message.Reason,
			Subject:   message.Subject,
		})
	})

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

type newsletterRequest struct {
	Email string `json:"email"`
}

// SubscribeNewsletter 接收订阅请求，重复订阅视为成功。
func (h *ContactHandler) SubscribeNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailPattern.MatchString(email) {
		BadRequest(c, "invalid email address")
		return
	}

	log := middleware.LoggerFromContext(c)

	subscriber := database.NewsletterSubscriber{Email: email}
	err := h.db.WithContext(c.Request.Context()).
		Where(&database.NewsletterSubscriber{Email: email}).
		FirstOrCreate(&subscriber).Error
	if err != nil {
		log.Error("persist newsletter subscriber failed", slog.Any("error", err))
		c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
		return
	}

	h.enqueueNotify(c, log, func() (*asynq.Task, error) {
		return tasks.NewNewsletterNotifyTask(tasks.NewsletterNotifyPayload{
			SubscriberID: subscriber.ID,
			Email:        subscriber.Email,
		})
	})

	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}

// enqueueNotify 以 fire-and-forget 方式入队通知任务，失败只记日志。
func (h *ContactHandler) enqueueNotify(c *gin.Context, log *slog.Logger, build func() (*asynq.Task, error)) {
	if h.asynqClient == nil {
		return
	}
	task, err := build()
	if err != nil {
		log.Error("build notify task failed", slog.Any("error", err))
		return
	}
	if _, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		log.Error("enqueue notify task failed", slog.Any("error", err))
	}
}
