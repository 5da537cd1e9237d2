package models

import (
	"fmt"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentFlashcards ContentType = "flashcards"
	ContentMCQs       ContentType = "mcqs"
	ContentQnAs       ContentType = "qnas"
	ContentNotebook   ContentType = "notebook"
	ContentResources  ContentType = "resources"
)

func ParseContentType(s string) (ContentType, error) {
	switch ct := ContentType(s); ct {
	case ContentFlashcards, ContentMCQs, ContentQnAs, ContentNotebook, ContentResources:
		return ct, nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// GenerateOptions are the parameters sent to the content generator.
type GenerateOptions struct {
	Topic          string `json:"topic"`
	Difficulty     string `json:"difficulty"`
	Count          int    `json:"count"`
	ChapterContent string `json:"chapter_content"`
}

const ChaptersEmptyMessage = "This course has no chapters yet."

type ChaptersView struct {
	Items        []Chapter `json:"items"`
	Empty        bool      `json:"empty"`
	EmptyMessage string    `json:"empty_message,omitempty"`
}

func NewChaptersView(chapters []Chapter) ChaptersView {
	if len(chapters) == 0 {
		return ChaptersView{Items: []Chapter{}, Empty: true, EmptyMessage: ChaptersEmptyMessage}
	}
	return ChaptersView{Items: chapters}
}

// CourseBundle is everything a course page renders.
type CourseBundle struct {
	Course     Course       `json:"course"`
	Chapters   ChaptersView `json:"chapters"`
	Flashcards []Flashcard  `json:"flashcards"`
	MCQs       []MCQ        `json:"mcqs"`
	QnAs       []QnA        `json:"qnas"`
	Resources  []Resource   `json:"resources"`
	Notebook   *Notebook    `json:"notebook"`
}

// GeneratedContent carries only the re-fetched collection of one type.
type GeneratedContent struct {
	Type       ContentType `json:"type"`
	Flashcards []Flashcard `json:"flashcards,omitempty"`
	MCQs       []MCQ       `json:"mcqs,omitempty"`
	QnAs       []QnA       `json:"qnas,omitempty"`
	Resources  []Resource  `json:"resources,omitempty"`
	Notebook   *Notebook   `json:"notebook,omitempty"`
}

type AnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type AnswerResult struct {
	MCQID         uuid.UUID `json:"mcq_id"`
	Selected      string    `json:"selected"`
	Correct       bool      `json:"correct"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   *string   `json:"explanation,omitempty"`
}

type ChapterMatch struct {
	ChapterID uuid.UUID `json:"chapter_id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	Score     float32   `json:"score"`
}

// ProgressSummary aggregates a user's course_progress rows.
type ProgressSummary struct {
	CourseCount     int64            `json:"course_count"`
	AverageProgress int              `json:"average_progress"`
	ByType          map[string]int64 `json:"by_type"`
}

type FavoriteRequest struct {
	ItemID   string `json:"item_id" validate:"required,max=200"`
	ItemType string `json:"item_type" validate:"required,max=50"`
}

type DashboardSummary struct {
	Completion     int                 `json:"completion"`
	Sections       []SectionCompletion `json:"sections"`
	HasResume      bool                `json:"has_resume"`
	Progress       ProgressSummary     `json:"progress"`
	FavoriteCount  int                 `json:"favorite_count"`
	DSA            DSAProgress         `json:"dsa"`
	ProfileMissing bool                `json:"profile_missing"`
}

const (
	DSAItemTopic   = "topic"
	DSAItemCompany = "company"
)

// DSAItemProgress is the solved share of one topic or company list.
type DSAItemProgress struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Solved   int    `json:"solved"`
	Total    int    `json:"total"`
	Progress int    `json:"progress"`
}

// DSAProgress sums topic and company lists. A problem listed under a topic
// and a company counts once in each.
type DSAProgress struct {
	TopicProblems   int               `json:"topic_problems"`
	TopicSolved     int               `json:"topic_solved"`
	CompanyProblems int               `json:"company_problems"`
	CompanySolved   int               `json:"company_solved"`
	TotalProblems   int               `json:"total_problems"`
	TotalSolved     int               `json:"total_solved"`
	Percentage      int               `json:"percentage"`
	Topics          []DSAItemProgress `json:"topics"`
	Companies       []DSAItemProgress `json:"companies"`
	RecentActivity  []DSAItemProgress `json:"recent_activity"`
}
