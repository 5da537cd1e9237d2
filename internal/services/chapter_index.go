package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/config"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

const (
	chapterVectorSize = 768
	maxSnippetRunes   = 300
)

// ChapterIndex is a semantic index over chunked course chapters.
type ChapterIndex interface {
	EnsureCollection(ctx context.Context) error
	IndexCourse(ctx context.Context, courseID uuid.UUID, chapters []models.Chapter) (int, error)
	Search(ctx context.Context, courseID uuid.UUID, query string, limit int) ([]models.ChapterMatch, error)
}

type qdrantChapterIndex struct {
	client     *qdrant.Client
	gemini     GeminiService
	chunker    TextChunker
	collection string
	vectorSize uint64
	logger     *zap.Logger
}

func NewChapterIndex(cfg config.QdrantConfig, gemini GeminiService, chunker TextChunker, log *zap.Logger) (ChapterIndex, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantChapterIndex{
		client:     client,
		gemini:     gemini,
		chunker:    chunker,
		collection: cfg.Collection,
		vectorSize: chapterVectorSize,
		logger:     log.Named("chapter_index"),
	}, nil
}

func (q *qdrantChapterIndex) EnsureCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		q.logger.Info("✅ Collection already exists", zap.String("collection", q.collection))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("✅ Qdrant collection created", zap.String("collection", q.collection))
	return nil
}

// IndexCourse replaces every point of the course with freshly embedded
// chunks of its chapters and returns the number of points written.
func (q *qdrantChapterIndex) IndexCourse(ctx context.Context, courseID uuid.UUID, chapters []models.Chapter) (int, error) {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collection,
		Wait:           qdrant.PtrOf(true),
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: courseFilter(courseID),
			},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear course points: %w", err)
	}

	var points []*qdrant.PointStruct
	for _, ch := range chapters {
		for i, chunk := range q.chunker.Chunk(ch.Content) {
			embedding, err := q.gemini.GenerateEmbedding(ctx, chunk)
			if err != nil {
				return 0, fmt.Errorf("failed to embed chapter %s: %w", ch.ID, err)
			}

			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewID(chunkPointID(ch.ID, i).String()),
				Vectors: qdrant.NewVectors(embedding...),
				Payload: qdrant.NewValueMap(chapterPayload(ch, i, chunk)),
			})
		}
	}

	if len(points) == 0 {
		return 0, nil
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert points: %w", err)
	}

	q.logger.Info("📚 Course indexed",
		zap.String("course_id", courseID.String()),
		zap.Int("chapters", len(chapters)),
		zap.Int("points", len(points)),
	)

	return len(points), nil
}

func (q *qdrantChapterIndex) Search(ctx context.Context, courseID uuid.UUID, query string, limit int) ([]models.ChapterMatch, error) {
	embedding, err := q.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	found, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         courseFilter(courseID),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]models.ChapterMatch, 0, len(found))
	for _, point := range found {
		matches = append(matches, matchFromPayload(point.Payload, point.Score))
	}

	return dedupeMatches(matches), nil
}

func courseFilter(courseID uuid.UUID) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("course_id", courseID.String()),
		},
	}
}

// chunkPointID is stable per chapter chunk so reindexing overwrites points.
func chunkPointID(chapterID uuid.UUID, chunk int) uuid.UUID {
	return uuid.NewSHA1(chapterID, []byte(strconv.Itoa(chunk)))
}

func chapterPayload(ch models.Chapter, chunk int, text string) map[string]any {
	return map[string]any{
		"course_id":   ch.CourseID.String(),
		"chapter_id":  ch.ID.String(),
		"title":       ch.Title,
		"chunk_index": int64(chunk),
		"text":        text,
	}
}

func matchFromPayload(payload map[string]*qdrant.Value, score float32) models.ChapterMatch {
	m := models.ChapterMatch{Score: score}

	str := func(key string) string {
		if v, ok := payload[key]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				return s.StringValue
			}
		}
		return ""
	}

	m.ChapterID, _ = uuid.Parse(str("chapter_id"))
	m.CourseID, _ = uuid.Parse(str("course_id"))
	m.Title = str("title")
	m.Snippet = truncate(str("text"), maxSnippetRunes)

	return m
}

// dedupeMatches keeps the best scoring chunk per chapter. Input is ordered
// by score already.
func dedupeMatches(matches []models.ChapterMatch) []models.ChapterMatch {
	seen := make(map[uuid.UUID]bool, len(matches))
	out := matches[:0]
	for _, m := range matches {
		if seen[m.ChapterID] {
			continue
		}
		seen[m.ChapterID] = true
		out = append(out, m)
	}
	return out
}
