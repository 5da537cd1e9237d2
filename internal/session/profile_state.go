// Package session holds per-identity profile state on top of the profile
// service.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
)

var (
	ErrLoadFailed     = errors.New("failed to load profile")
	ErrUploadRejected = errors.New("failed to extract profile data")
)

// ProfileGateway is the part of the profile service the state drives.
type ProfileGateway interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileAggregate, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update models.ProfileUpdate) (*models.ProfileAggregate, error)
	UploadResume(ctx context.Context, userID uuid.UUID, file models.ResumeFile) (*models.UploadResult, error)
	ApplyExtractedData(ctx context.Context, userID uuid.UUID, data *models.ExtractedResumeData) (bool, error)
	DeleteResume(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ProfileState owns the in-memory profile of one identity. Fields are
// guarded but operations are not serialised: concurrent operations each
// reload and the last reload to finish wins.
type ProfileState struct {
	identity *models.Identity
	gateway  ProfileGateway
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.RWMutex
	profile *models.ProfileAggregate
	loading bool
	err     error
}

// NewProfileState builds the state for identity, which may be nil for an
// unauthenticated caller.
func NewProfileState(identity *models.Identity, gateway ProfileGateway, notifier Notifier, log *zap.Logger) *ProfileState {
	return &ProfileState{
		identity: identity,
		gateway:  gateway,
		notifier: notifier,
		logger:   log.Named("profile_state"),
		now:      time.Now,
	}
}

func (s *ProfileState) Profile() *models.ProfileAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *ProfileState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the error flag set by the last failed load.
func (s *ProfileState) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ProfileState) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// LoadProfile replaces the in-memory profile with the stored one. On
// failure it installs an empty profile seeded from the identity and sets
// the error flag instead of returning an error.
func (s *ProfileState) LoadProfile(ctx context.Context) {
	if s.identity == nil {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	profile, err := s.gateway.GetProfile(ctx, s.identity.UserID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("⚠️ Failed to load profile, using empty profile",
			zap.String("user_id", s.identity.UserID.String()),
			zap.Error(err),
		)
		s.err = fmt.Errorf("%w: %v", ErrLoadFailed, err)
		s.profile = models.NewEmptyProfile(s.identity.UserID, s.identity.FullName, s.identity.Email, s.now())
		return
	}

	s.err = nil
	s.profile = profile
}

// UpdateProfile sends a partial update and adopts the returned record. The
// in-memory profile only changes after the write succeeded.
func (s *ProfileState) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	if s.identity == nil {
		return services.ErrAuthRequired
	}

	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.gateway.UpdateProfile(ctx, s.identity.UserID, update)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = updated
	s.mu.Unlock()

	return nil
}

// UploadResume does nothing without a loaded profile and an identity. A
// rejected upload is reported through the notifier and returned as an error.
func (s *ProfileState) UploadResume(ctx context.Context, file models.ResumeFile) (*models.UploadResult, error) {
	if s.identity == nil || s.Profile() == nil {
		return nil, nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.gateway.UploadResume(ctx, s.identity.UserID, file)
	if err == nil && !result.Success {
		msg := result.Message
		if msg == "" {
			msg = ErrUploadRejected.Error()
		}
		err = fmt.Errorf("%w: %s", ErrUploadRejected, msg)
	}
	if err != nil {
		s.notifier.Notify(Destructive("Error", "Failed to upload resume. Please try again."))
		return nil, err
	}

	s.LoadProfile(ctx)

	return result, nil
}

// ApplyExtractedData reports success as a bool. Failures are notified, not
// returned.
func (s *ProfileState) ApplyExtractedData(ctx context.Context, data *models.ExtractedResumeData) bool {
	if s.identity == nil || data.IsEmpty() {
		return false
	}

	s.setLoading(true)
	defer s.setLoading(false)

	ok, err := s.gateway.ApplyExtractedData(ctx, s.identity.UserID, data)
	if err != nil || !ok {
		s.logger.Warn("⚠️ Failed to apply extracted data", zap.Error(err))
		s.notifier.Notify(Destructive("Error", "Failed to apply extracted data. Please try again."))
		return false
	}

	s.LoadProfile(ctx)
	s.notifier.Notify(Info("Success! 🎉", "Your profile has been automatically filled with extracted data from your resume."))

	return true
}

func (s *ProfileState) DeleteResume(ctx context.Context) bool {
	if s.identity == nil {
		return false
	}

	s.setLoading(true)
	defer s.setLoading(false)

	ok, err := s.gateway.DeleteResume(ctx, s.identity.UserID)
	if err != nil || !ok {
		s.logger.Warn("⚠️ Failed to delete resume", zap.Error(err))
		s.notifier.Notify(Destructive("Error", "Failed to delete resume. Please try again."))
		return false
	}

	s.LoadProfile(ctx)
	s.notifier.Notify(Info("Resume Deleted", "Your resume has been successfully deleted."))

	return true
}
