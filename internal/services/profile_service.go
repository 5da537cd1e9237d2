package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Vishwa-247/light-and-lovely-space/internal/config"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
)

const (
	ActionProfileUpdated  = "profile_updated"
	ActionResumeUploaded  = "resume_uploaded"
	ActionResumeDeleted   = "resume_deleted"
	ActionResumeAnalyzed  = "resume_analyzed"
	ActionExtractApplied  = "extracted_data_applied"
	ActionExtractDeclined = "extracted_data_declined"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileAggregate, error)
	GetUserResume(ctx context.Context, userID uuid.UUID) (*models.ResumeData, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update models.ProfileUpdate) (*models.ProfileAggregate, error)
	UploadResume(ctx context.Context, userID uuid.UUID, file models.ResumeFile) (*models.UploadResult, error)
	ApplyExtractedData(ctx context.Context, userID uuid.UUID, data *models.ExtractedResumeData) (bool, error)
	DeclineExtractedData(ctx context.Context, userID, extractionID uuid.UUID) error
	DeleteResume(ctx context.Context, userID uuid.UUID) (bool, error)
	ResumeLinks(ctx context.Context, userID uuid.UUID) (*models.ResumeLinks, error)
	AnalyzeResume(ctx context.Context, userID uuid.UUID, jobRole, jobDescription string) (*models.ResumeAnalysis, error)
	Completion(ctx context.Context, userID uuid.UUID) ([]models.SectionCompletion, int, error)
}

type profileService struct {
	profiles  repositories.ProfileRepository
	resumes   repositories.ResumeRepository
	storage   ObjectStorage
	parser    DocumentParser
	extractor ResumeExtractor
	analyzer  ResumeAnalyzer
	tracker   ProgressTracker
	cfg       config.StorageConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewProfileService(
	profiles repositories.ProfileRepository,
	resumes repositories.ResumeRepository,
	storage ObjectStorage,
	parser DocumentParser,
	extractor ResumeExtractor,
	analyzer ResumeAnalyzer,
	tracker ProgressTracker,
	cfg config.StorageConfig,
	log *zap.Logger,
) ProfileService {
	return &profileService{
		profiles:  profiles,
		resumes:   resumes,
		storage:   storage,
		parser:    parser,
		extractor: extractor,
		analyzer:  analyzer,
		tracker:   tracker,
		cfg:       cfg,
		logger:    log.Named("profile"),
		now:       time.Now,
	}
}

// GetProfile assembles the aggregate. It never creates rows.
func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileAggregate, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sections, err := s.profiles.LoadSections(ctx, userID)
	if err != nil {
		return nil, err
	}

	resume, err := s.GetUserResume(ctx, userID)
	if err != nil {
		return nil, err
	}

	agg := &models.ProfileAggregate{
		UserID: userID,
		PersonalInfo: models.PersonalInfo{
			FullName:  profile.FullName,
			Email:     profile.Email,
			Phone:     profile.Phone,
			Location:  profile.Location,
			LinkedIn:  profile.LinkedinURL,
			GitHub:    profile.GithubURL,
			Portfolio: profile.PortfolioURL,
			Summary:   profile.ProfessionalSummary,
		},
		Education:      nonNilSlice(sections.Education),
		Experience:     nonNilSlice(sections.Experience),
		Projects:       nonNilSlice(sections.Projects),
		Skills:         nonNilSlice(sections.Skills),
		Certifications: nonNilSlice(sections.Certifications),
		ResumeData:     resume,
		Revision:       profile.Revision,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
	agg.CompletionPercentage = OverallCompletion(SectionCompletion(agg))

	return agg, nil
}

// GetUserResume returns nil without error when the user has no resume.
func (s *profileService) GetUserResume(ctx context.Context, userID uuid.UUID) (*models.ResumeData, error) {
	resume, err := s.resumes.FindByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return models.NewResumeData(resume), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update models.ProfileUpdate) (*models.ProfileAggregate, error) {
	err := s.profiles.Transaction(ctx, func(repo repositories.ProfileRepository) error {
		if err := s.ensureProfile(ctx, repo, userID, nil); err != nil {
			return err
		}

		if _, err := repo.BumpRevision(ctx, userID, update.Revision); err != nil {
			return err
		}

		if err := repo.UpdatePersonalInfo(ctx, userID, update.PersonalInfo.Columns()); err != nil {
			return err
		}

		if update.Education != nil {
			if err := repo.ReplaceEducation(ctx, userID, *update.Education); err != nil {
				return err
			}
		}
		if update.Experience != nil {
			if err := repo.ReplaceExperience(ctx, userID, *update.Experience); err != nil {
				return err
			}
		}
		if update.Projects != nil {
			if err := repo.ReplaceProjects(ctx, userID, *update.Projects); err != nil {
				return err
			}
		}
		if update.Skills != nil {
			if err := repo.ReplaceSkills(ctx, userID, *update.Skills); err != nil {
				return err
			}
		}
		if update.Certifications != nil {
			if err := repo.ReplaceCertifications(ctx, userID, *update.Certifications); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	agg, err := s.refreshCompletion(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, section := range updatedSections(update) {
		s.tracker.Track(AnalyticsEvent(userID, ActionProfileUpdated, section))
	}

	return agg, nil
}

func (s *profileService) UploadResume(ctx context.Context, userID uuid.UUID, file models.ResumeFile) (*models.UploadResult, error) {
	if err := ValidateResumeFile(file.Size, file.ContentType, s.cfg.MaxFileSize); err != nil {
		return nil, err
	}

	text, err := s.parser.ExtractText(file.Data, file.ContentType)
	if err != nil {
		s.logger.Warn("⚠️ Resume text extraction failed", zap.String("user_id", userID.String()), zap.Error(err))
		return &models.UploadResult{
			Success: false,
			Message: "We couldn't read any text from this file. Please upload a text-based PDF, DOC or DOCX.",
		}, nil
	}

	previous, err := s.resumes.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	key := ResumeObjectKey(s.cfg.Prefix, userID, file.Filename)
	if err := s.storage.Put(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	if err := s.ensureProfile(ctx, s.profiles, userID, nil); err != nil {
		return nil, err
	}

	extracted, aiErr := s.extractor.Extract(ctx, text)
	if aiErr != nil {
		s.logger.Error("❌ Resume extraction failed, keeping upload", zap.String("user_id", userID.String()), zap.Error(aiErr))
	}

	size := file.Size
	resume := &models.UserResume{
		UserID:           userID,
		Filename:         file.Filename,
		FilePath:         key,
		FileSize:         &size,
		ContentType:      file.ContentType,
		UploadDate:       s.now(),
		ExtractedText:    &text,
		ExtractionStatus: models.ProcessingCompleted,
		ProcessingStatus: models.ProcessingCompleted,
	}
	if aiErr != nil {
		resume.ExtractionStatus = models.ProcessingFailed
	} else if !extracted.IsEmpty() {
		if raw, err := json.Marshal(extracted); err == nil {
			resume.ParsedData = datatypes.JSON(raw)
		}
	}

	if err := s.resumes.Upsert(ctx, resume); err != nil {
		s.removeObject(ctx, key)
		return nil, err
	}

	if previous != nil && previous.FilePath != key {
		s.removeObject(ctx, previous.FilePath)
	}

	result := &models.UploadResult{
		Success: true,
		Message: "Resume uploaded successfully",
		Resume:  models.NewResumeData(resume),
	}

	switch {
	case aiErr != nil:
		s.recordExtraction(ctx, userID, resume.ID, nil, models.ExtractionFailed)
		result.Message = "Resume uploaded, but automatic data extraction is unavailable right now"
	case extracted.IsEmpty():
		result.Message = "Resume uploaded, no profile data could be extracted"
	default:
		result.ExtractedData = extracted
		result.ExtractionID = s.recordExtraction(ctx, userID, resume.ID, extracted, models.ExtractionPending)
		result.Message = "Resume uploaded and analyzed successfully"
	}

	if _, err := s.profiles.BumpRevision(ctx, userID, nil); err != nil {
		return nil, err
	}

	s.tracker.Track(AnalyticsEvent(userID, ActionResumeUploaded, SectionResume))

	return result, nil
}

// ApplyExtractedData merges extracted resume data into the profile. Entries
// already present are skipped and only empty personal fields are filled.
func (s *profileService) ApplyExtractedData(ctx context.Context, userID uuid.UUID, data *models.ExtractedResumeData) (bool, error) {
	if data.IsEmpty() {
		return false, nil
	}

	err := s.profiles.Transaction(ctx, func(repo repositories.ProfileRepository) error {
		if err := s.ensureProfile(ctx, repo, userID, data.PersonalInfo); err != nil {
			return err
		}

		profile, err := repo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}

		existing, err := repo.LoadSections(ctx, userID)
		if err != nil {
			return err
		}

		if err := repo.UpdatePersonalInfo(ctx, userID, fillEmptyPersonal(profile, data)); err != nil {
			return err
		}

		if err := repo.AppendSections(ctx, userID, newEntries(existing, data)); err != nil {
			return err
		}

		_, err = repo.BumpRevision(ctx, userID, nil)
		return err
	})
	if err != nil {
		return false, err
	}

	if _, err := s.resumes.ResolvePendingExtractions(ctx, userID, models.ExtractionApplied); err != nil {
		s.logger.Warn("⚠️ Failed to mark extraction applied", zap.Error(err))
	}

	if _, err := s.refreshCompletion(ctx, userID); err != nil {
		s.logger.Warn("⚠️ Failed to refresh completion", zap.Error(err))
	}

	s.tracker.Track(AnalyticsEvent(userID, ActionExtractApplied, ""))

	return true, nil
}

// DeclineExtractedData marks one extraction, or with a nil id every pending
// one, as declined. The uploaded resume is kept.
func (s *profileService) DeclineExtractedData(ctx context.Context, userID, extractionID uuid.UUID) error {
	var err error
	if extractionID == uuid.Nil {
		_, err = s.resumes.ResolvePendingExtractions(ctx, userID, models.ExtractionDeclined)
	} else {
		err = s.resumes.UpdateExtractionStatus(ctx, userID, extractionID, models.ExtractionDeclined)
	}
	if err != nil {
		return err
	}

	s.tracker.Track(AnalyticsEvent(userID, ActionExtractDeclined, ""))

	return nil
}

// DeleteResume reports false when there was nothing to delete.
func (s *profileService) DeleteResume(ctx context.Context, userID uuid.UUID) (bool, error) {
	resume, err := s.resumes.FindByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.resumes.DeleteByUserID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	s.removeObject(ctx, resume.FilePath)

	if _, err := s.profiles.BumpRevision(ctx, userID, nil); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	s.tracker.Track(AnalyticsEvent(userID, ActionResumeDeleted, SectionResume))

	return true, nil
}

func (s *profileService) ResumeLinks(ctx context.Context, userID uuid.UUID) (*models.ResumeLinks, error) {
	resume, err := s.resumes.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	preview, err := s.storage.PresignGet(ctx, resume.FilePath, s.cfg.PreviewURLTTL, "")
	if err != nil {
		return nil, err
	}

	download, err := s.storage.PresignGet(ctx, resume.FilePath, s.cfg.DownloadURLTTL, resume.Filename)
	if err != nil {
		return nil, err
	}

	return &models.ResumeLinks{
		PreviewURL:        preview,
		PreviewExpiresAt:  now.Add(s.cfg.PreviewURLTTL),
		DownloadURL:       download,
		DownloadExpiresAt: now.Add(s.cfg.DownloadURLTTL),
	}, nil
}

func (s *profileService) AnalyzeResume(ctx context.Context, userID uuid.UUID, jobRole, jobDescription string) (*models.ResumeAnalysis, error) {
	resume, err := s.resumes.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if resume.ExtractedText == nil || strings.TrimSpace(*resume.ExtractedText) == "" {
		return nil, ErrNoResumeText
	}

	analysis := s.analyzer.Analyze(ctx, *resume.ExtractedText, jobRole, jobDescription)

	raw, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	if err := s.resumes.UpdateAnalysis(ctx, userID, datatypes.JSON(raw), analysis.SkillGaps, analysis.Recommendations); err != nil {
		return nil, err
	}

	s.tracker.Track(AnalyticsEvent(userID, ActionResumeAnalyzed, SectionResume))

	return analysis, nil
}

func (s *profileService) Completion(ctx context.Context, userID uuid.UUID) ([]models.SectionCompletion, int, error) {
	agg, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	sections := SectionCompletion(agg)
	return sections, OverallCompletion(sections), nil
}

// ensureProfile creates the profile row on first write.
func (s *profileService) ensureProfile(ctx context.Context, repo repositories.ProfileRepository, userID uuid.UUID, seed *models.PersonalInfo) error {
	_, err := repo.FindByUserID(ctx, userID)
	if err == nil || !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	profile := &models.UserProfile{UserID: userID}
	if seed != nil {
		profile.FullName = strings.TrimSpace(seed.FullName)
		profile.Email = strings.TrimSpace(seed.Email)
	}

	return repo.Create(ctx, profile)
}

// refreshCompletion reloads the aggregate and persists its completion.
func (s *profileService) refreshCompletion(ctx context.Context, userID uuid.UUID) (*models.ProfileAggregate, error) {
	agg, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.UpdateCompletion(ctx, userID, agg.CompletionPercentage); err != nil {
		s.logger.Warn("⚠️ Failed to persist completion", zap.Error(err))
	}

	return agg, nil
}

func (s *profileService) recordExtraction(ctx context.Context, userID, resumeID uuid.UUID, data *models.ExtractedResumeData, status models.ExtractionStatus) *uuid.UUID {
	raw := []byte("{}")
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}

	extraction := &models.ResumeExtraction{
		UserID:         userID,
		ResumeID:       &resumeID,
		ExtractedData:  datatypes.JSON(raw),
		ExtractionType: "full",
		Status:         status,
	}
	if err := s.resumes.CreateExtraction(ctx, extraction); err != nil {
		s.logger.Warn("⚠️ Failed to record extraction", zap.Error(err))
		return nil
	}

	return &extraction.ID
}

func (s *profileService) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("⚠️ Failed to remove resume object", zap.String("key", key), zap.Error(err))
	}
}

func updatedSections(u models.ProfileUpdate) []string {
	var sections []string
	if len(u.PersonalInfo.Columns()) > 0 {
		sections = append(sections, SectionPersonal)
	}
	if u.Education != nil {
		sections = append(sections, SectionEducation)
	}
	if u.Experience != nil {
		sections = append(sections, SectionExperience)
	}
	if u.Projects != nil {
		sections = append(sections, SectionProjects)
	}
	if u.Skills != nil {
		sections = append(sections, SectionSkills)
	}
	if u.Certifications != nil {
		sections = append(sections, SectionCertifications)
	}
	return sections
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
