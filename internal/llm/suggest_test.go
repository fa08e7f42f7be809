package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	answer string
	err    error
	got    *CompletionRequest
}

func (f *fakeClient) Complete(_ context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &CompletionResponse{Content: f.answer, TokensIn: 10, TokensOut: 2}, nil
}

func (f *fakeClient) Name() string { return "fake" }

func TestSuggest_AcceptsKnownCategory(t *testing.T) {
	fc := &fakeClient{answer: " \"Musique\".\n"}
	got, ok := NewCategorySuggester(fc, time.Second, nil).Suggest(context.Background(), "ukulélé soprano")

	require.True(t, ok)
	assert.Equal(t, "Musique", got)
	require.Len(t, fc.got.Messages, 1)
	assert.Contains(t, fc.got.Messages[0].Content, "ukulélé soprano")
	assert.Contains(t, fc.got.Messages[0].Content, "Puériculture")
}

func TestSuggest_RejectsOutsideSet(t *testing.T) {
	for _, answer := range []string{"NONE", "Instruments", "musique", ""} {
		_, ok := NewCategorySuggester(&fakeClient{answer: answer}, time.Second, nil).Suggest(context.Background(), "objet")
		assert.False(t, ok, answer)
	}
}

func TestSuggest_ProviderError(t *testing.T) {
	_, ok := NewCategorySuggester(&fakeClient{err: errors.New("boom")}, time.Second, nil).Suggest(context.Background(), "objet")
	assert.False(t, ok)
}

func TestSuggest_EmptyTextSkipsProvider(t *testing.T) {
	fc := &fakeClient{answer: "Autre"}
	_, ok := NewCategorySuggester(fc, time.Second, nil).Suggest(context.Background(), "   ")
	assert.False(t, ok)
	assert.Nil(t, fc.got)
}

func TestSelect(t *testing.T) {
	_, err := Select(ProviderAnthropic, "", "")
	assert.ErrorIs(t, err, ErrNoProvider)

	c, err := Select(ProviderAnthropic, "", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())

	c, err = Select(ProviderOpenAI, "ak-test", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())

	c, err = Select("", "ak-test", "")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", c.Name())
}
