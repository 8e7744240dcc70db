package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/achariya/ambassador-backend/internal/models"
	"github.com/achariya/ambassador-backend/internal/queue"
)

// SettlementNotificationJobPayload describes a settlement event to notify
type SettlementNotificationJobPayload struct {
	SettlementID uuid.UUID `json:"settlement_id"`
	Event        string    `json:"event"` // "created", "processed"
}

// SettlementNotificationJob sends best-effort settlement notifications.
// Delivery transport (push/email) lives outside this service; the job
// resolves the recipient and hands off to the log for now.
type SettlementNotificationJob struct {
	db    *gorm.DB
	queue queue.Queue
}

// NewSettlementNotificationJob creates a new settlement notification job handler
func NewSettlementNotificationJob(db *gorm.DB, q queue.Queue) *SettlementNotificationJob {
	return &SettlementNotificationJob{db: db, queue: q}
}

// RegisterSettlementNotificationJobHandlers registers the notification job handler
func RegisterSettlementNotificationJobHandlers(q queue.Queue, db *gorm.DB) *SettlementNotificationJob {
	handler := NewSettlementNotificationJob(db, q)
	q.RegisterHandler(queue.JobTypeSettlementNotification, handler.ProcessNotification)
	return handler
}

// NotifySettlement implements settlement.Notifier: fire-and-forget enqueue
func (j *SettlementNotificationJob) NotifySettlement(settlementID uuid.UUID, event string) {
	payload := SettlementNotificationJobPayload{SettlementID: settlementID, Event: event}
	if _, err := j.queue.Enqueue(queue.JobTypeSettlementNotification, payload); err != nil {
		log.Printf("Failed to enqueue settlement notification for %s: %v", settlementID, err)
	}
}

// ProcessNotification processes a settlement notification job
func (j *SettlementNotificationJob) ProcessNotification(ctx context.Context, job queue.Job) error {
	var payload SettlementNotificationJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal notification payload: %w", err)
	}

	var settlement models.Settlement
	if err := j.db.Preload("User").First(&settlement, "id = ?", payload.SettlementID).Error; err != nil {
		return fmt.Errorf("failed to load settlement: %w", err)
	}

	log.Printf("Settlement %s %s: user %s, amount %.2f",
		settlement.Reference, payload.Event, settlement.User.Email, settlement.Amount)
	return nil
}
