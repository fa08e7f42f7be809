package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/leboncoincoin/marketplace-web/internal/catalog"
	"github.com/leboncoincoin/marketplace-web/pkg/metrics"
)

// Guess sources.
const (
	SourceKeyword = "keyword"
	SourceLLM     = "llm"
	SourceNone    = "none"
)

// Suggester classifies text when keywords find nothing.
type Suggester interface {
	Suggest(ctx context.Context, text string) (string, bool)
}

// CategoryGuess is the answer to a category inference request.
type CategoryGuess struct {
	Category string `json:"category,omitempty"`
	Matched  bool   `json:"matched"`
	Source   string `json:"source"`
}

// CategoryService exposes the category list and inference.
type CategoryService struct {
	suggester Suggester
}

// NewCategoryService creates a category service. suggester may be nil.
func NewCategoryService(suggester Suggester) *CategoryService {
	return &CategoryService{suggester: suggester}
}

// Categories returns the closed category set in display order.
func (s *CategoryService) Categories() []string {
	return catalog.Categories()
}

// Guess infers a category from keywords, then from the suggester when
// one is configured. Text too short for keyword matching is never sent
// to the suggester.
func (s *CategoryService) Guess(ctx context.Context, text string) CategoryGuess {
	if c, ok := catalog.Guess(text); ok {
		metrics.RecordCategoryGuess(SourceKeyword, true)
		return CategoryGuess{Category: c, Matched: true, Source: SourceKeyword}
	}

	if s.suggester != nil && longEnough(text) {
		if c, ok := s.suggester.Suggest(ctx, text); ok && catalog.IsCategory(c) {
			metrics.RecordCategoryGuess(SourceLLM, true)
			return CategoryGuess{Category: c, Matched: true, Source: SourceLLM}
		}
		metrics.RecordCategoryGuess(SourceLLM, false)
		return CategoryGuess{Source: SourceNone}
	}

	metrics.RecordCategoryGuess(SourceKeyword, false)
	return CategoryGuess{Source: SourceNone}
}

func longEnough(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= catalog.MinGuessLength
}
