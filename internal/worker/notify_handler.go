package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"resumeforge/internal/tasks"
)

// Mailer 抽象邮件协作方，真实实现由部署环境注入。
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer 把邮件内容写进日志，用于没有配置邮件服务的环境。
type LogMailer struct {
	Logger *slog.Logger
}

// Send 实现 Mailer。
func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.Logger.Info("mail dispatched",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}

// NotifyTaskHandler 消费联系留言与订阅通知任务，把通知交给邮件协作方。
type NotifyTaskHandler struct {
	mailer     Mailer
	adminEmail string
	logger     *slog.Logger
}

// NewNotifyTaskHandler 创建通知任务处理器。
func NewNotifyTaskHandler(mailer Mailer, adminEmail string, logger *slog.Logger) *NotifyTaskHandler {
	return &NotifyTaskHandler{
		mailer:     mailer,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// ProcessContact 处理联系留言通知。
func (h *NotifyTaskHandler) ProcessContact(ctx context.Context, t *asynq.Task) error {
	var payload tasks.ContactNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal contact payload failed", slog.Any("error", err))
		return err
	}

	body := fmt.Sprintf("New contact message #%d from %s <%s> (%s): %s",
		payload.MessageID, payload.Name, payload.Email, payload.Reason, payload.Subject)
	return h.mailer.Send(ctx, h.adminEmail, "New contact message", body)
}

// ProcessNewsletter 处理订阅通知。
func (h *NotifyTaskHandler) ProcessNewsletter(ctx context.Context, t *asynq.Task) error {
	var payload tasks.NewsletterNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal newsletter payload failed", slog.Any("error", err))
		return err
	}

	return h.mailer.Send(ctx, payload.Email, "Welcome to the newsletter",
		"You are subscribed. You can unsubscribe at any time.")
}
