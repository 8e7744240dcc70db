package queue

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Worker processes jobs from a RedisQueue with a pool of goroutines and a
// gocron scheduler for recurring enqueues
type Worker struct {
	queue      *RedisQueue
	numWorkers int
	wg         sync.WaitGroup
	quit       chan struct{}
	scheduler  *gocron.Scheduler
}

// NewWorker creates a new worker
func NewWorker(queue *RedisQueue, numWorkers int) *Worker {
	return &Worker{
		queue:      queue,
		numWorkers: numWorkers,
		quit:       make(chan struct{}),
		scheduler:  gocron.NewScheduler(time.UTC),
	}
}

// Start starts the worker pool and the scheduler
func (w *Worker) Start() {
	log.Printf("Starting %d queue workers", w.numWorkers)
	for i := 0; i < w.numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}
	w.scheduler.StartAsync()
}

// Stop stops the worker pool and the scheduler
func (w *Worker) Stop() {
	log.Println("Stopping queue workers")
	close(w.quit)
	w.wg.Wait()
	w.scheduler.Stop()
}

// ScheduleDaily registers a recurring enqueue at the given HH:MM (UTC)
func (w *Worker) ScheduleDaily(at string, jobType JobType, payloadFn func() interface{}) error {
	_, err := w.scheduler.Every(1).Day().At(at).Do(func() {
		if _, err := w.queue.Enqueue(jobType, payloadFn()); err != nil {
			log.Printf("Failed to enqueue scheduled job %s: %v", jobType, err)
		}
	})
	return err
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.quit:
			log.Printf("Queue worker %d stopped", workerID)
			return
		default:
			job, err := w.queue.Dequeue(1 * time.Second)
			if err != nil {
				log.Printf("Error dequeueing job: %v", err)
				time.Sleep(1 * time.Second)
				continue
			}
			if job == nil {
				continue
			}
			w.queue.Process(context.Background(), job)
		}
	}
}
