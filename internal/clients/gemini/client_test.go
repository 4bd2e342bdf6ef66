package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractTextFromResponse_JoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "## AAPL\n"},
				{Text: "Trading below intrinsic value. "},
			}},
		}},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "## AAPL\nTrading below intrinsic value.", text)
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	_, err := extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(nil)
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "   "}}}}},
	})
	assert.Error(t, err)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "  ")
	assert.Error(t, err)
}

func TestNewClient_Options(t *testing.T) {
	c, err := NewClient(context.Background(), "key", WithModel("gemini-2.5-pro"), WithTemperature(0.1), WithModel(""))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", c.Model())
	assert.InDelta(t, 0.1, float64(c.temperature), 1e-6)
}
