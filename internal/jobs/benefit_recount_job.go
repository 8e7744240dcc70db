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
	"github.com/achariya/ambassador-backend/internal/services/revenue"
)

// BenefitRecountJobPayload identifies the ambassador to recount. A nil
// UserID means recount every ambassador with at least one referral.
type BenefitRecountJobPayload struct {
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

// BenefitRecountJob refreshes cached benefit aggregates from raw referrals
type BenefitRecountJob struct {
	db         *gorm.DB
	queue      queue.Queue
	revenueSvc *revenue.Service
}

// NewBenefitRecountJob creates a new benefit recount job handler
func NewBenefitRecountJob(db *gorm.DB, q queue.Queue, revenueSvc *revenue.Service) *BenefitRecountJob {
	return &BenefitRecountJob{db: db, queue: q, revenueSvc: revenueSvc}
}

// RegisterBenefitRecountJobHandlers registers the recount job handler
func RegisterBenefitRecountJobHandlers(q queue.Queue, db *gorm.DB, revenueSvc *revenue.Service) *BenefitRecountJob {
	handler := NewBenefitRecountJob(db, q, revenueSvc)
	q.RegisterHandler(queue.JobTypeBenefitRecount, handler.ProcessRecount)
	return handler
}

// EnqueueRecount enqueues a recount for one ambassador
func (j *BenefitRecountJob) EnqueueRecount(userID uuid.UUID) error {
	_, err := j.queue.Enqueue(queue.JobTypeBenefitRecount, BenefitRecountJobPayload{UserID: &userID})
	return err
}

// ProcessRecount processes a benefit recount job
func (j *BenefitRecountJob) ProcessRecount(ctx context.Context, job queue.Job) error {
	var payload BenefitRecountJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal recount payload: %w", err)
	}

	if payload.UserID != nil {
		return j.revenueSvc.RecountUserBenefit(*payload.UserID)
	}

	// Nightly sweep: every ambassador that ever referred
	var userIDs []uuid.UUID
	if err := j.db.Model(&models.ReferralLead{}).
		Distinct("ambassador_id").
		Pluck("ambassador_id", &userIDs).Error; err != nil {
		return fmt.Errorf("failed to list ambassadors for recount: %w", err)
	}

	for _, id := range userIDs {
		if err := j.revenueSvc.RecountUserBenefit(id); err != nil {
			log.Printf("Recount failed for user %s: %v", id, err)
		}
	}
	return nil
}
