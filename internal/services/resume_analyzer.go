package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

const AIProviderFallback = "fallback"

type ResumeAnalyzer interface {
	// Analyze never fails: without a usable model reply it returns the
	// static fallback analysis.
	Analyze(ctx context.Context, resumeText, jobRole, jobDescription string) *models.ResumeAnalysis
}

type resumeAnalyzer struct {
	gemini  GeminiService
	prompts *PromptBuilder
	logger  *zap.Logger
	now     func() time.Time
}

func NewResumeAnalyzer(gemini GeminiService, prompts *PromptBuilder, log *zap.Logger) ResumeAnalyzer {
	return &resumeAnalyzer{
		gemini:  gemini,
		prompts: prompts,
		logger:  log.Named("resume_analyzer"),
		now:     time.Now,
	}
}

func (a *resumeAnalyzer) Analyze(ctx context.Context, resumeText, jobRole, jobDescription string) *models.ResumeAnalysis {
	prompt := a.prompts.BuildResumeAnalysisPrompt(resumeText, jobRole, jobDescription)

	analysis, err := a.generate(ctx, prompt)
	if err != nil {
		a.logger.Error("❌ Resume analysis failed, using fallback", zap.String("job_role", jobRole), zap.Error(err))
		analysis = FallbackAnalysis()
	}

	analysis.JobRole = jobRole
	analysis.AnalyzedAt = a.now()

	return analysis
}

func (a *resumeAnalyzer) generate(ctx context.Context, prompt string) (*models.ResumeAnalysis, error) {
	response, err := a.gemini.GenerateJSONWithRetry(ctx, prompt, 0.3)
	if err != nil {
		return nil, err
	}

	var analysis models.ResumeAnalysis
	if err := parseJSONResponse(response, &analysis); err != nil {
		return nil, err
	}

	analysis.OverallScore = analysis.OverallScore.Clamp()
	analysis.JobMatchScore = analysis.JobMatchScore.Clamp()
	analysis.ATSScore = analysis.ATSScore.Clamp()
	analysis.AIProvider = "gemini"

	return &analysis, nil
}

// FallbackAnalysis is served when the AI provider cannot produce one.
func FallbackAnalysis() *models.ResumeAnalysis {
	unavailable := "Analysis unavailable"

	return &models.ResumeAnalysis{
		OverallScore:    50,
		JobMatchScore:   50,
		ATSScore:        50,
		Strengths:       []string{"Resume uploaded successfully"},
		Weaknesses:      []string{"AI analysis temporarily unavailable"},
		SkillGaps:       []string{"Unable to analyze at this time"},
		Recommendations: []string{"Please try again later"},
		KeywordsFound:   []string{},
		MissingKeywords: []string{},
		SectionsAnalysis: models.SectionsAnalysis{
			Summary:          unavailable,
			Experience:       unavailable,
			Skills:           unavailable,
			Education:        unavailable,
			OverallStructure: unavailable,
		},
		ImprovementPriority: []string{"Try uploading again"},
		RoleSpecificAdvice:  []string{"AI service temporarily unavailable"},
		AIProvider:          AIProviderFallback,
	}
}
