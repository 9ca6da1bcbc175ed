package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// NotifyChannel 返回用户专属的 Redis Pub/Sub 频道名，worker 发布、ws 订阅。
func NotifyChannel(userID uint) string {
	return fmt.Sprintf("notify:user:%d", userID)
}

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeExportSnapshot   = "export:snapshot"
	TypeContactNotify    = "notify:contact"
	TypeNewsletterNotify = "notify:newsletter"
)

// ExportSnapshotPayload 描述生成导出快照所需的最小信息。
type ExportSnapshotPayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewExportSnapshotTask 构造一个新的简历导出快照任务。
func NewExportSnapshotTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportSnapshotPayload{
		ResumeID:      id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExportSnapshot, payload), nil
}

// ContactNotifyPayload 描述联系表单留言的通知内容。
type ContactNotifyPayload struct {
	MessageID uint   `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Reason    string `json:"reason"`
	Subject   string `json:"subject"`
}

// NewContactNotifyTask 构造联系留言通知任务。
func NewContactNotifyTask(p ContactNotifyPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeContactNotify, payload), nil
}

// NewsletterNotifyPayload 描述新订阅的通知内容。
type NewsletterNotifyPayload struct {
	SubscriberID uint   `json:"subscriber_id"`
	Email        string `json:"email"`
}

// NewNewsletterNotifyTask 构造订阅通知任务。
func NewNewsletterNotifyTask(p NewsletterNotifyPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNewsletterNotify, payload), nil
}
