package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const queueKey = "queue:jobs"

// RedisQueue implements Queue on a Redis list with a DB job ledger
type RedisQueue struct {
	client   *redis.Client
	db       *gorm.DB
	ctx      context.Context
	handlers map[JobType]JobHandler
}

// NewRedisQueue creates a new Redis-backed queue
func NewRedisQueue(client *redis.Client, db *gorm.DB) *RedisQueue {
	return &RedisQueue{
		client:   client,
		db:       db,
		ctx:      context.Background(),
		handlers: make(map[JobType]JobHandler),
	}
}

// RegisterHandler registers a handler for a job type
func (q *RedisQueue) RegisterHandler(jobType JobType, handler JobHandler) {
	q.handlers[jobType] = handler
}

// Enqueue pushes a job onto the queue and records it in the ledger
func (q *RedisQueue) Enqueue(jobType JobType, payload interface{}) (string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job payload: %w", err)
	}

	job := Job{
		ID:        uuid.New(),
		Type:      jobType,
		Payload:   payloadBytes,
		Status:    JobStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := q.db.Create(&job).Error; err != nil {
		return "", fmt.Errorf("failed to persist job: %w", err)
	}

	data, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := q.client.LPush(q.ctx, queueKey, data).Err(); err != nil {
		return "", fmt.Errorf("failed to push job to queue: %w", err)
	}

	return job.ID.String(), nil
}

// Dequeue pops the next job, blocking up to timeout. Returns nil when the
// queue is empty.
func (q *RedisQueue) Dequeue(timeout time.Duration) (*Job, error) {
	result, err := q.client.BRPop(q.ctx, timeout, queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop job from queue: %w", err)
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// Process runs the registered handler for a job and updates the ledger.
// Failed jobs are re-enqueued until MaxRetries is exhausted.
func (q *RedisQueue) Process(ctx context.Context, job *Job) {
	handler, ok := q.handlers[job.Type]
	if !ok {
		log.Printf("No handler registered for job type %s", job.Type)
		q.markStatus(job, JobStatusFailed, "no handler registered")
		return
	}

	q.markStatus(job, JobStatusProcessing, "")

	if err := handler(ctx, *job); err != nil {
		log.Printf("Job %s (%s) failed: %v", job.ID, job.Type, err)
		job.RetryCount++
		if job.RetryCount < job.MaxRetries {
			q.markStatus(job, JobStatusPending, err.Error())
			data, merr := json.Marshal(job)
			if merr == nil {
				if perr := q.client.LPush(q.ctx, queueKey, data).Err(); perr != nil {
					log.Printf("Failed to re-enqueue job %s: %v", job.ID, perr)
				}
			}
			return
		}
		q.markStatus(job, JobStatusFailed, err.Error())
		return
	}

	q.markStatus(job, JobStatusCompleted, "")
}

func (q *RedisQueue) markStatus(job *Job, status JobStatus, errMsg string) {
	job.Status = status
	job.Error = errMsg
	job.UpdatedAt = time.Now()
	if err := q.db.Model(&Job{}).Where("id = ?", job.ID).
		Updates(map[string]interface{}{
			"status":      status,
			"error":       errMsg,
			"retry_count": job.RetryCount,
			"updated_at":  job.UpdatedAt,
		}).Error; err != nil {
		log.Printf("Failed to update job %s status: %v", job.ID, err)
	}
}
