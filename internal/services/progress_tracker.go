package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

// TrackingEvent carries either a course progress row or a profile
// analytics row.
type TrackingEvent struct {
	Progress  *models.CourseProgress
	Analytics *models.ProfileAnalytics
}

// ProgressTracker records events in the background. Track never blocks and
// never fails: events are dropped when the queue is full or the tracker is
// stopped.
type ProgressTracker interface {
	Start(ctx context.Context)
	Stop()
	Track(event TrackingEvent)
}

type progressWriter interface {
	CreateProgress(ctx context.Context, progress *models.CourseProgress) error
}

type analyticsWriter interface {
	RecordAnalytics(ctx context.Context, event *models.ProfileAnalytics) error
}

type progressTracker struct {
	progress     progressWriter
	analytics    analyticsWriter
	queue        chan TrackingEvent
	concurrency  int
	writeTimeout time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
	stopped      atomic.Bool
	logger       *zap.Logger
}

func NewProgressTracker(
	progress progressWriter,
	analytics analyticsWriter,
	concurrency int,
	queueSize int,
	log *zap.Logger,
) ProgressTracker {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}

	return &progressTracker{
		progress:     progress,
		analytics:    analytics,
		queue:        make(chan TrackingEvent, queueSize),
		concurrency:  concurrency,
		writeTimeout: 5 * time.Second,
		stopChan:     make(chan struct{}),
		logger:       log.Named("tracker"),
	}
}

func (t *progressTracker) Start(ctx context.Context) {
	t.logger.Info("🚀 Starting progress tracker", zap.Int("workers", t.concurrency))

	for i := 0; i < t.concurrency; i++ {
		t.wg.Add(1)
		go t.processEvents(ctx, i+1)
	}
}

// Stop waits for the workers to flush what is already queued.
func (t *progressTracker) Stop() {
	t.stopOnce.Do(func() {
		t.logger.Info("🛑 Stopping progress tracker...")
		t.stopped.Store(true)
		close(t.stopChan)
		t.wg.Wait()
		t.logger.Info("✅ Progress tracker stopped")
	})
}

func (t *progressTracker) Track(event TrackingEvent) {
	if t.stopped.Load() {
		t.logger.Debug("tracker stopped, dropping event")
		return
	}

	select {
	case t.queue <- event:
	default:
		t.logger.Warn("⚠️ Tracking queue full, dropping event")
	}
}

func (t *progressTracker) processEvents(ctx context.Context, workerID int) {
	defer t.wg.Done()

	for {
		select {
		case <-t.stopChan:
			t.drain(ctx)
			t.logger.Debug("worker stopped", zap.Int("worker", workerID))
			return
		case event := <-t.queue:
			t.write(ctx, event)
		}
	}
}

func (t *progressTracker) drain(ctx context.Context) {
	for {
		select {
		case event := <-t.queue:
			t.write(ctx, event)
		default:
			return
		}
	}
}

// write detaches from the caller's cancellation so that shutdown still
// flushes queued events.
func (t *progressTracker) write(ctx context.Context, event TrackingEvent) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.writeTimeout)
	defer cancel()

	if event.Progress != nil {
		if err := t.progress.CreateProgress(writeCtx, event.Progress); err != nil {
			t.logger.Warn("❌ Failed to record progress",
				zap.String("type", event.Progress.ProgressType),
				zap.Error(err),
			)
		}
	}

	if event.Analytics != nil {
		if err := t.analytics.RecordAnalytics(writeCtx, event.Analytics); err != nil {
			t.logger.Warn("❌ Failed to record analytics",
				zap.String("action", event.Analytics.ActionType),
				zap.Error(err),
			)
		}
	}
}

// AnalyticsEvent builds a profile analytics event.
func AnalyticsEvent(userID uuid.UUID, action, section string) TrackingEvent {
	e := &models.ProfileAnalytics{UserID: userID, ActionType: action}
	if section != "" {
		e.SectionName = &section
	}
	return TrackingEvent{Analytics: e}
}
