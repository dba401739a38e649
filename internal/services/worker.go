package services

import (
	"context"
	"log"
	"sync"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/repositories"
)

const submissionQueueSize = 100

// SubmissionRecorder persists recommendation submissions off the request
// path.
type SubmissionRecorder interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(submission models.Submission) bool
}

type submissionRecorder struct {
	repo        repositories.SubmissionRepository
	queue       chan models.Submission
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewSubmissionRecorder(repo repositories.SubmissionRepository, concurrency int) SubmissionRecorder {
	return &submissionRecorder{
		repo:        repo,
		queue:       make(chan models.Submission, submissionQueueSize),
		concurrency: max(concurrency, 1),
		stopChan:    make(chan struct{}),
	}
}

// Start implements SubmissionRecorder.
func (w *submissionRecorder) Start(ctx context.Context) {
	log.Printf("🚀 Starting submission recorder with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.process(ctx, i+1)
	}

	log.Println("✅ Submission recorder started successfully")
}

// Stop implements SubmissionRecorder. Queued submissions are written before
// Stop returns.
func (w *submissionRecorder) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping submission recorder...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Submission recorder stopped")
	})
}

// Enqueue implements SubmissionRecorder. It never blocks; a full queue or a
// stopped recorder drops the submission and returns false.
func (w *submissionRecorder) Enqueue(submission models.Submission) bool {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Recorder stopped, dropping submission of user %s\n", submission.UserID)
		return false
	default:
	}

	select {
	case w.queue <- submission:
		return true
	default:
		log.Printf("⚠️  Submission queue full, dropping submission of user %s\n", submission.UserID)
		return false
	}
}

func (w *submissionRecorder) process(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.drain(workerID)
			log.Printf("👷 Recorder #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Recorder #%d cancelled\n", workerID)
			return
		case submission := <-w.queue:
			w.record(workerID, submission)
		}
	}
}

func (w *submissionRecorder) drain(workerID int) {
	for {
		select {
		case submission := <-w.queue:
			w.record(workerID, submission)
		default:
			return
		}
	}
}

func (w *submissionRecorder) record(workerID int, submission models.Submission) {
	if err := w.repo.Create(&submission); err != nil {
		log.Printf("❌ Recorder #%d failed to store submission of user %s: %v\n", workerID, submission.UserID, err)
		return
	}
	log.Printf("✅ Recorder #%d stored submission of user %s\n", workerID, submission.UserID)
}
