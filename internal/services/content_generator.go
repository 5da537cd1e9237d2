package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

const contentTemperature = 0.7

// ContentGenerator asks the AI provider for study material of one type and
// maps the reply onto rows ready to be persisted for the course.
type ContentGenerator interface {
	Generate(ctx context.Context, courseID uuid.UUID, contentType models.ContentType, opts models.GenerateOptions) (*models.GeneratedContent, error)
}

type contentGenerator struct {
	gemini  GeminiService
	prompts *PromptBuilder
	logger  *zap.Logger
}

func NewContentGenerator(gemini GeminiService, prompts *PromptBuilder, log *zap.Logger) ContentGenerator {
	return &contentGenerator{
		gemini:  gemini,
		prompts: prompts,
		logger:  log.Named("content_generator"),
	}
}

type generatedFlashcard struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

type generatedMCQ struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type generatedQnA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type generatedResource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Provider    string `json:"provider"`
}

type generatedReply struct {
	Flashcards  []generatedFlashcard `json:"flashcards"`
	MCQs        []generatedMCQ       `json:"mcqs"`
	QnAs        []generatedQnA       `json:"qnas"`
	Resources   []generatedResource  `json:"resources"`
	KeyConcepts json.RawMessage      `json:"key_concepts"`
	MindMap     json.RawMessage      `json:"mind_map"`
	StudyGuide  string               `json:"study_guide"`
	Analogy     string               `json:"analogy"`
}

func (g *contentGenerator) Generate(ctx context.Context, courseID uuid.UUID, contentType models.ContentType, opts models.GenerateOptions) (*models.GeneratedContent, error) {
	if _, err := models.ParseContentType(string(contentType)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, contentType)
	}

	prompt := g.prompts.BuildContentPrompt(contentType, opts)

	response, err := g.gemini.GenerateJSONWithRetry(ctx, prompt, contentTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var reply generatedReply
	if err := parseJSONResponse(response, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	out := mapGenerated(courseID, contentType, &reply)
	if contentCount(out) == 0 {
		return nil, fmt.Errorf("%w: no usable %s in reply", ErrGenerationFailed, contentType)
	}

	g.logger.Info("✨ Content generated",
		zap.String("course_id", courseID.String()),
		zap.String("type", string(contentType)),
		zap.Int("items", contentCount(out)),
	)

	return out, nil
}

func contentCount(c *models.GeneratedContent) int {
	n := len(c.Flashcards) + len(c.MCQs) + len(c.QnAs) + len(c.Resources)
	if c.Notebook != nil {
		n++
	}
	return n
}

// mapGenerated keeps only well-formed items. MCQs whose correct answer is
// not one of their options are dropped.
func mapGenerated(courseID uuid.UUID, contentType models.ContentType, r *generatedReply) *models.GeneratedContent {
	out := &models.GeneratedContent{Type: contentType}

	switch contentType {
	case models.ContentFlashcards:
		for _, f := range r.Flashcards {
			q, a := strings.TrimSpace(f.Question), strings.TrimSpace(f.Answer)
			if q == "" || a == "" {
				continue
			}
			out.Flashcards = append(out.Flashcards, models.Flashcard{
				CourseID:   courseID,
				Question:   q,
				Answer:     a,
				Difficulty: optional(f.Difficulty),
			})
		}

	case models.ContentMCQs:
		for _, m := range r.MCQs {
			mcq := models.MCQ{
				CourseID:      courseID,
				Question:      strings.TrimSpace(m.Question),
				Options:       datatypes.JSONSlice[string](compactStrings(m.Options)),
				CorrectAnswer: strings.TrimSpace(m.CorrectAnswer),
				Explanation:   optional(m.Explanation),
				Difficulty:    optional(m.Difficulty),
			}
			if mcq.Question == "" || len(mcq.Options) < 2 || !mcq.Valid() {
				continue
			}
			out.MCQs = append(out.MCQs, mcq)
		}

	case models.ContentQnAs:
		for _, qa := range r.QnAs {
			q, a := strings.TrimSpace(qa.Question), strings.TrimSpace(qa.Answer)
			if q == "" || a == "" {
				continue
			}
			out.QnAs = append(out.QnAs, models.QnA{CourseID: courseID, Question: q, Answer: a})
		}

	case models.ContentResources:
		for _, res := range r.Resources {
			title, link := strings.TrimSpace(res.Title), strings.TrimSpace(res.URL)
			if title == "" || link == "" {
				continue
			}
			kind := strings.ToLower(strings.TrimSpace(res.Type))
			if kind == "" {
				kind = "article"
			}
			out.Resources = append(out.Resources, models.Resource{
				CourseID:    courseID,
				Title:       title,
				URL:         link,
				Type:        kind,
				Description: optional(res.Description),
				Provider:    optional(res.Provider),
			})
		}

	case models.ContentNotebook:
		if len(r.KeyConcepts) == 0 || string(r.KeyConcepts) == "null" {
			break
		}
		nb := &models.Notebook{
			CourseID:    courseID,
			KeyConcepts: datatypes.JSON(r.KeyConcepts),
			StudyGuide:  optional(r.StudyGuide),
			Analogy:     optional(r.Analogy),
		}
		if len(r.MindMap) > 0 && string(r.MindMap) != "null" {
			nb.MindMap = datatypes.JSON(r.MindMap)
		}
		out.Notebook = nb
	}

	return out
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
