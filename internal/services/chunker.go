package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	Chunk(text string) []string
}

type textChunker struct {
	maxChunkSize int
	overlap      int
}

// NewTextChunker splits text on paragraph boundaries, falling back to
// sentences for oversized paragraphs. Sizes are in runes.
func NewTextChunker(maxChunkSize, overlap int) TextChunker {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	return &textChunker{maxChunkSize: maxChunkSize, overlap: overlap}
}

func (tc *textChunker) Chunk(text string) []string {
	var (
		chunks  []string
		current strings.Builder
		carried int // runes of overlap at the head of current
	)

	flush := func() {
		chunks = append(chunks, current.String())
		current.Reset()

		tail := lastRunes(chunks[len(chunks)-1], tc.overlap)
		current.WriteString(tail)
		carried = utf8.RuneCountInString(tail)
	}

	add := func(piece, sep string) {
		size := utf8.RuneCountInString(current.String())
		if size > carried && size+utf8.RuneCountInString(piece)+len(sep) > tc.maxChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(piece)
	}

	for _, para := range strings.Split(normalizeNewlines(text), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= tc.maxChunkSize {
			add(para, "\n\n")
			continue
		}

		for _, sentence := range splitSentences(para) {
			add(sentence, " ")
		}
	}

	if utf8.RuneCountInString(current.String()) > carried {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitSentences keeps the terminating punctuation on each sentence.
func splitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)

	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
