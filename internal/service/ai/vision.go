package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/kapu/roastmaster-go/internal/constants"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
)

// GenerateVision sends a mixed text+image prompt to OpenAI and returns the
// text output. Requires an OpenAI client.
func (mm *ModelManager) GenerateVision(ctx context.Context, promptText, imageURL string, maxTokens int) (string, error) {
	if !mm.HasOpenAI() {
		return "", fmt.Errorf("vision requires an OpenAI client")
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(promptText),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: imageURL,
		}),
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(constants.ModelConfig.VisionOpenAIModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	}
	if maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(maxTokens))
	}

	resp, err := mm.openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		mm.logger.Warn("Vision generation failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in vision response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
