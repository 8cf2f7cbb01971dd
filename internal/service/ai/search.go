package ai

import (
	"context"
	"fmt"

	"github.com/kapu/roastmaster-go/internal/constants"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// SearchResult is the output of a search-grounded generation: free text plus
// whatever source URLs the grounding produced.
type SearchResult struct {
	Text    string
	Sources []string
}

// GenerateGrounded runs a prompt through Gemini with the Google Search tool
// enabled. Requires a Gemini client; there is no OpenAI fallback for search.
func (mm *ModelManager) GenerateGrounded(ctx context.Context, promptText string) (*SearchResult, error) {
	if !mm.HasGemini() {
		return nil, fmt.Errorf("search requires a Gemini client")
	}

	genConfig := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	modelName := constants.ModelConfig.SearchGeminiModel

	resp, err := mm.geminiClient.Models.GenerateContent(ctx, modelName, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: promptText},
			},
		},
	}, genConfig)
	if err != nil {
		mm.logger.Warn("Grounded generation failed", zap.Error(err))
		return nil, err
	}

	text := extractTextFromGeminiResponse(resp)
	if text == "" {
		return nil, fmt.Errorf("empty response from grounded search")
	}

	result := &SearchResult{
		Text:    text,
		Sources: extractGroundingSources(resp),
	}

	mm.logger.Debug("Grounded search completed",
		zap.String("model", modelName),
		zap.Int("text_length", len(text)),
		zap.Int("sources", len(result.Sources)),
	)

	return result, nil
}

func extractGroundingSources(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}

	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}

	var sources []string
	for _, chunk := range metadata.GroundingChunks {
		if chunk != nil && chunk.Web != nil && chunk.Web.URI != "" {
			sources = append(sources, chunk.Web.URI)
		}
	}
	return sources
}
