// Package upload runs resume uploads as background flows with staged,
// simulated progress and an explicit apply/decline decision at the end.
package upload

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/config"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
	"github.com/Vishwa-247/light-and-lovely-space/internal/session"
)

var (
	ErrFlowRunning       = errors.New("an upload is already being processed")
	ErrNoPendingDecision = errors.New("no upload is waiting for a decision")
	ErrDecisionRunning   = errors.New("a decision is already being applied")
)

const genericFailure = "I couldn't analyze your resume. Please try again."

// ProfileService is what a flow needs from the profile service.
type ProfileService interface {
	session.ProfileGateway
	DeclineExtractedData(ctx context.Context, userID, extractionID uuid.UUID) error
}

type Manager struct {
	store   Store
	service ProfileService
	tick    time.Duration
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	running map[uuid.UUID]struct{}
	wg      sync.WaitGroup
}

func NewManager(store Store, service ProfileService, cfg config.UploadConfig, log *zap.Logger) *Manager {
	tick := cfg.Tick
	if tick <= 0 {
		tick = 400 * time.Millisecond
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Manager{
		store:   store,
		service: service,
		tick:    tick,
		timeout: timeout,
		logger:  log.Named("upload"),
		now:     time.Now,
		running: map[uuid.UUID]struct{}{},
	}
}

// Start validates the file and processes it in the background. The returned
// snapshot is the initial processing state. A rejected file yields a failed
// snapshot carrying the notification together with the validation error.
func (m *Manager) Start(ctx context.Context, identity *models.Identity, file models.ResumeFile) (*Snapshot, error) {
	if identity == nil {
		return nil, services.ErrAuthRequired
	}

	notes := session.NewCollector()
	if err := ValidateFile(file.Filename, file.Size, file.ContentType, notes); err != nil {
		snap := idleSnapshot(identity.UserID)
		snap.State = StateFailed
		snap.Error = err.Error()
		snap.Notifications = notes.Drain()
		return snap, err
	}

	if !m.claim(identity.UserID) {
		return nil, ErrFlowRunning
	}

	now := m.now()
	snap := &Snapshot{
		UserID:        identity.UserID,
		State:         StateProcessing,
		Caption:       Caption(0),
		Indeterminate: true,
		Filename:      file.Filename,
		Notifications: []models.Notification{},
		StartedAt:     now,
		UpdatedAt:     now,
	}
	if err := m.store.Save(ctx, snap); err != nil {
		m.release(identity.UserID)
		return nil, err
	}

	flowCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	state := session.NewProfileState(identity, m.service, notes, m.logger)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		m.run(flowCtx, state, notes, snap.clone(), file)
	}()

	return snap, nil
}

type uploadOutcome struct {
	result *models.UploadResult
	err    error
}

func (m *Manager) run(ctx context.Context, state *session.ProfileState, notes *session.Collector, snap *Snapshot, file models.ResumeFile) {
	done := make(chan uploadOutcome, 1)

	// The claim is held until the upload itself returns, even when the flow
	// has already been reported as timed out.
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.release(snap.UserID)
		state.LoadProfile(ctx)
		result, err := state.UploadResume(ctx, file)
		done <- uploadOutcome{result: result, err: err}
	}()

	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()
	ticks := ticker.C

	for {
		select {
		case <-ticks:
			var reached bool
			snap.Progress, snap.Stage, reached = Advance(snap.Progress, snap.Stage)
			snap.Caption = Caption(snap.Stage)
			if reached {
				ticks = nil
			}
			m.save(ctx, snap)

		case out := <-done:
			m.finish(ctx, snap, notes, out)
			return

		case <-ctx.Done():
			m.finish(context.WithoutCancel(ctx), snap, notes, uploadOutcome{err: ctx.Err()})
			return
		}
	}
}

func (m *Manager) finish(ctx context.Context, snap *Snapshot, notes *session.Collector, out uploadOutcome) {
	snap.Indeterminate = false

	switch {
	case out.err == nil && out.result != nil && out.result.Success:
		snap.Progress = 100
		snap.Caption = CompleteCaption
		snap.Message = out.result.Message
		snap.Resume = out.result.Resume

		if out.result.ExtractedData.IsEmpty() {
			snap.State = StateCompleted
			notes.Notify(session.Info("Resume uploaded", out.result.Message))
			break
		}

		snap.State = StateAwaitingDecision
		snap.PendingDecision = &PendingDecision{
			ExtractionID:  out.result.ExtractionID,
			ExtractedData: out.result.ExtractedData,
		}
		notes.Notify(session.Info("🤖 AI Agent Ready!", "I've analyzed your resume and extracted your profile data."))

	default:
		msg := failureMessage(out.err)
		snap.State = StateFailed
		snap.Progress = 0
		snap.Stage = 0
		snap.Caption = ""
		snap.Error = msg
		notes.Notify(session.Destructive("AI Processing Failed", msg))

		m.logger.Warn("⚠️ Upload flow failed",
			zap.String("user_id", snap.UserID.String()),
			zap.Error(out.err),
		)
	}

	snap.Notifications = append(snap.Notifications, notes.Drain()...)
	m.save(ctx, snap)
}

// failureMessage only surfaces errors meant for the user.
func failureMessage(err error) string {
	if err != nil && (errors.Is(err, session.ErrUploadRejected) || errors.Is(err, services.ErrInvalidFile)) {
		return err.Error()
	}
	return genericFailure
}

// Decide applies or declines the extracted data of a finished upload.
// Declining keeps the uploaded resume. A failed apply leaves the decision
// pending so it can be retried or declined.
func (m *Manager) Decide(ctx context.Context, identity *models.Identity, apply bool) (*Snapshot, error) {
	if identity == nil {
		return nil, services.ErrAuthRequired
	}

	if _, err := m.pendingDecision(ctx, identity.UserID); err != nil {
		return nil, err
	}

	if !m.claim(identity.UserID) {
		return nil, ErrDecisionRunning
	}
	defer m.release(identity.UserID)

	// Another decision may have completed between the first read and the claim.
	snap, err := m.pendingDecision(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	notes := session.NewCollector()

	if apply {
		state := session.NewProfileState(identity, m.service, notes, m.logger)
		if !state.ApplyExtractedData(ctx, snap.PendingDecision.ExtractedData) {
			notes.Notify(session.Destructive("Update Failed", "I couldn't update your profile. Please try again."))
			snap.Notifications = append(snap.Notifications, notes.Drain()...)
			snap.UpdatedAt = m.now()
			return snap, m.store.Save(ctx, snap)
		}
		notes.Notify(session.Info("✨ Profile Updated!", "I've successfully filled your profile with AI-extracted data. Check out your sections!"))
	} else {
		extractionID := uuid.Nil
		if snap.PendingDecision.ExtractionID != nil {
			extractionID = *snap.PendingDecision.ExtractionID
		}
		if err := m.service.DeclineExtractedData(ctx, identity.UserID, extractionID); err != nil {
			return nil, err
		}
		notes.Notify(session.Info("No problem!", "Your resume is saved. You can fill your profile manually or upload again later."))
	}

	snap.State = StateCompleted
	snap.PendingDecision = nil
	snap.Progress = 0
	snap.Stage = 0
	snap.Caption = ""
	snap.Notifications = append(snap.Notifications, notes.Drain()...)
	snap.UpdatedAt = m.now()

	if err := m.store.Save(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (m *Manager) pendingDecision(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	snap, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap == nil || snap.State != StateAwaitingDecision || snap.PendingDecision == nil {
		return nil, ErrNoPendingDecision
	}
	return snap, nil
}

// Status returns the user's flow, or an idle snapshot when there is none.
func (m *Manager) Status(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	snap, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return idleSnapshot(userID), nil
	}
	return snap, nil
}

// Wait blocks until every running flow has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) claim(userID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.running[userID]; busy {
		return false
	}
	m.running[userID] = struct{}{}
	return true
}

func (m *Manager) release(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.running, userID)
}

func (m *Manager) save(ctx context.Context, snap *Snapshot) {
	snap.UpdatedAt = m.now()
	if err := m.store.Save(ctx, snap); err != nil {
		m.logger.Error("❌ Failed to save upload flow", zap.String("user_id", snap.UserID.String()), zap.Error(err))
	}
}
