package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/internal/catalog"
	"github.com/leboncoincoin/marketplace-web/pkg/logger"
	"github.com/leboncoincoin/marketplace-web/pkg/metrics"
)

// maxSuggestInput caps the text sent to the provider, in runes.
const maxSuggestInput = 300

// CategorySuggester asks an LLM to classify free text into the closed
// category set. Any answer outside the set counts as no match.
type CategorySuggester struct {
	client  Client
	timeout time.Duration
	logger  *logger.Logger
}

// NewCategorySuggester wraps client. timeout bounds each call.
func NewCategorySuggester(client Client, timeout time.Duration, log *logger.Logger) *CategorySuggester {
	if log == nil {
		log = logger.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CategorySuggester{client: client, timeout: timeout, logger: log}
}

// Suggest returns a category for text, or false when the provider fails
// or answers with something that is not a category.
func (s *CategorySuggester) Suggest(ctx context.Context, text string) (string, bool) {
	text = truncate(strings.TrimSpace(text), maxSuggestInput)
	if text == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Complete(ctx, &CompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: prompt(text)}},
	})
	if err != nil {
		metrics.RecordLLMRequest(s.client.Name(), "error", time.Since(start).Seconds(), 0, 0)
		s.logger.Warn("category suggestion failed", zap.String("provider", s.client.Name()), zap.Error(err))
		return "", false
	}
	metrics.RecordLLMRequest(s.client.Name(), "ok", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	answer := strings.Trim(strings.TrimSpace(resp.Content), `"'.`)
	if !catalog.IsCategory(answer) {
		s.logger.Debug("category suggestion outside the set", zap.String("answer", answer))
		return "", false
	}
	return answer, true
}

func prompt(text string) string {
	return fmt.Sprintf(
		"Classify this classified-ad text into exactly one of these categories: %s.\n"+
			"Reply with the category name only, or NONE if nothing fits.\n\nText: %s",
		strings.Join(catalog.Categories(), ", "), text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
