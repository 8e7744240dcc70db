package jobs

import (
	"gorm.io/gorm"

	"github.com/achariya/ambassador-backend/internal/queue"
	"github.com/achariya/ambassador-backend/internal/services/revenue"
)

// Handlers bundles the registered job handlers main wires into services
type Handlers struct {
	Recount      *BenefitRecountJob
	Notification *SettlementNotificationJob
}

// RegisterAllJobHandlers registers all job handlers with the queue
func RegisterAllJobHandlers(q queue.Queue, db *gorm.DB, revenueSvc *revenue.Service) *Handlers {
	return &Handlers{
		Recount:      RegisterBenefitRecountJobHandlers(q, db, revenueSvc),
		Notification: RegisterSettlementNotificationJobHandlers(q, db),
	}
}

// ScheduleRecurringJobs schedules the nightly full recount sweep
func ScheduleRecurringJobs(w *queue.Worker) error {
	return w.ScheduleDaily("02:00", queue.JobTypeBenefitRecount, func() interface{} {
		return BenefitRecountJobPayload{}
	})
}
