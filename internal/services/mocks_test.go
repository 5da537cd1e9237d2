package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
)

// MockGeminiService is a mock implementation of GeminiService.
type MockGeminiService struct {
	mock.Mock
}

func (m *MockGeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockGeminiService) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockGeminiService) GenerateJSONWithRetry(ctx context.Context, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.UserProfile
	sections map[uuid.UUID]*repositories.ProfileSections
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: map[uuid.UUID]*models.UserProfile{},
		sections: map[uuid.UUID]*repositories.ProfileSections{},
	}
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) UpdatePersonalInfo(_ context.Context, userID uuid.UUID, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	for col, v := range columns {
		s := v.(string)
		switch col {
		case "full_name":
			p.FullName = s
		case "email":
			p.Email = s
		case "phone":
			p.Phone = s
		case "location":
			p.Location = s
		case "linkedin_url":
			p.LinkedinURL = s
		case "github_url":
			p.GithubURL = s
		case "portfolio_url":
			p.PortfolioURL = s
		case "professional_summary":
			p.ProfessionalSummary = s
		}
	}
	return nil
}

func (r *fakeProfileRepo) LoadSections(_ context.Context, userID uuid.UUID) (*repositories.ProfileSections, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sections[userID]
	if !ok {
		return &repositories.ProfileSections{}, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeProfileRepo) section(userID uuid.UUID) *repositories.ProfileSections {
	s, ok := r.sections[userID]
	if !ok {
		s = &repositories.ProfileSections{}
		r.sections[userID] = s
	}
	return s
}

func (r *fakeProfileRepo) ReplaceEducation(_ context.Context, userID uuid.UUID, items []models.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.section(userID).Education = items
	return nil
}

func (r *fakeProfileRepo) ReplaceExperience(_ context.Context, userID uuid.UUID, items []models.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.section(userID).Experience = items
	return nil
}

func (r *fakeProfileRepo) ReplaceProjects(_ context.Context, userID uuid.UUID, items []models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.section(userID).Projects = items
	return nil
}

func (r *fakeProfileRepo) ReplaceSkills(_ context.Context, userID uuid.UUID, items []models.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.section(userID).Skills = items
	return nil
}

func (r *fakeProfileRepo) ReplaceCertifications(_ context.Context, userID uuid.UUID, items []models.Certification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.section(userID).Certifications = items
	return nil
}

func (r *fakeProfileRepo) AppendSections(_ context.Context, userID uuid.UUID, s repositories.ProfileSections) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.section(userID)
	cur.Education = append(cur.Education, s.Education...)
	cur.Experience = append(cur.Experience, s.Experience...)
	cur.Projects = append(cur.Projects, s.Projects...)
	cur.Skills = append(cur.Skills, s.Skills...)
	cur.Certifications = append(cur.Certifications, s.Certifications...)
	return nil
}

func (r *fakeProfileRepo) BumpRevision(_ context.Context, userID uuid.UUID, expected *int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	if expected != nil && *expected != p.Revision {
		return 0, repositories.ErrRevisionConflict
	}
	p.Revision++
	return p.Revision, nil
}

func (r *fakeProfileRepo) UpdateCompletion(_ context.Context, userID uuid.UUID, percentage int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.profiles[userID]; ok {
		p.CompletionPercentage = percentage
	}
	return nil
}

func (r *fakeProfileRepo) Transaction(_ context.Context, fn func(repo repositories.ProfileRepository) error) error {
	return fn(r)
}

type fakeResumeRepo struct {
	mu          sync.Mutex
	resumes     map[uuid.UUID]*models.UserResume
	extractions []*models.ResumeExtraction
	upsertErr   error
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{resumes: map[uuid.UUID]*models.UserResume{}}
}

func (r *fakeResumeRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.UserResume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resumes[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeResumeRepo) Upsert(_ context.Context, resume *models.UserResume) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	resume.ID = uuid.New()
	cp := *resume
	r.resumes[resume.UserID] = &cp
	return nil
}

func (r *fakeResumeRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resumes[userID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.resumes, userID)
	return nil
}

func (r *fakeResumeRepo) UpdateAnalysis(_ context.Context, userID uuid.UUID, analysis datatypes.JSON, skillGaps, recommendations []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resumes[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	res.AIAnalysis = analysis
	res.SkillGaps = skillGaps
	res.Recommendations = recommendations
	res.ProcessingStatus = models.ProcessingCompleted
	return nil
}

func (r *fakeResumeRepo) CreateExtraction(_ context.Context, extraction *models.ResumeExtraction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	extraction.ID = uuid.New()
	cp := *extraction
	r.extractions = append(r.extractions, &cp)
	return nil
}

func (r *fakeResumeRepo) FindExtraction(_ context.Context, userID, id uuid.UUID) (*models.ResumeExtraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.extractions {
		if e.ID == id && e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeResumeRepo) UpdateExtractionStatus(_ context.Context, userID, id uuid.UUID, status models.ExtractionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.extractions {
		if e.ID == id && e.UserID == userID {
			e.Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeResumeRepo) ResolvePendingExtractions(_ context.Context, userID uuid.UUID, status models.ExtractionStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, e := range r.extractions {
		if e.UserID == userID && e.Status == models.ExtractionPending {
			e.Status = status
			n++
		}
	}
	return n, nil
}

func (r *fakeResumeRepo) statuses() []models.ExtractionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ExtractionStatus
	for _, e := range r.extractions {
		out = append(out, e.Status)
	}
	return out
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Put(_ context.Context, key string, data []byte, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) PresignGet(_ context.Context, key string, ttl time.Duration, downloadName string) (string, error) {
	return fmt.Sprintf("https://storage.local/%s?ttl=%s&name=%s", key, ttl, downloadName), nil
}

func (s *fakeStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for k := range s.objects {
		out = append(out, k)
	}
	return out
}

type stubParser struct {
	text string
	err  error
}

func (p stubParser) ExtractText(_ []byte, _ string) (string, error) {
	return p.text, p.err
}

type stubExtractor struct {
	data *models.ExtractedResumeData
	err  error
}

func (e stubExtractor) Extract(_ context.Context, _ string) (*models.ExtractedResumeData, error) {
	return e.data, e.err
}

type stubAnalyzer struct {
	analysis *models.ResumeAnalysis
}

func (a stubAnalyzer) Analyze(_ context.Context, _, jobRole, _ string) *models.ResumeAnalysis {
	out := *a.analysis
	out.JobRole = jobRole
	return &out
}

type recordingTracker struct {
	mu     sync.Mutex
	events []TrackingEvent
}

func (t *recordingTracker) Start(context.Context) {}
func (t *recordingTracker) Stop()                 {}

func (t *recordingTracker) Track(event TrackingEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *recordingTracker) actions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []string
	for _, e := range t.events {
		if e.Analytics != nil {
			out = append(out, e.Analytics.ActionType)
		}
		if e.Progress != nil {
			out = append(out, e.Progress.ProgressType)
		}
	}
	return out
}
