package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kapu/roastmaster-go/internal/constants"
	"github.com/kapu/roastmaster-go/internal/util"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ModelManager owns the generative clients. Either client may be absent;
// callers check availability and degrade instead of failing the request.
type ModelManager struct {
	geminiClient       *genai.Client
	openaiClient       *openai.Client
	logger             *zap.Logger
	defaultGeminiModel string
	defaultOpenAIModel string
	enableFallback     bool
}

type ModelManagerConfig struct {
	GeminiAPIKey       string
	OpenAIAPIKey       string
	DefaultGeminiModel string
	DefaultOpenAIModel string
	EnableFallback     bool
}

type GenerateOptions struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int
	JSONMode        bool
}

type GenerateMetadata struct {
	Provider     string
	Model        string
	UsedFallback bool
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	defaultGemini := cfg.DefaultGeminiModel
	if defaultGemini == "" {
		defaultGemini = constants.ModelConfig.DefaultGeminiModel
	}

	defaultOpenAI := cfg.DefaultOpenAIModel
	if defaultOpenAI == "" {
		defaultOpenAI = constants.ModelConfig.DefaultOpenAIModel
	}

	mm := &ModelManager{
		logger:             logger,
		defaultGeminiModel: defaultGemini,
		defaultOpenAIModel: defaultOpenAI,
		enableFallback:     cfg.EnableFallback && cfg.OpenAIAPIKey != "",
	}

	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		mm.geminiClient = client
		logger.Info("Gemini enabled", zap.String("model", defaultGemini))
	} else {
		logger.Info("Gemini disabled (no API key)")
	}

	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
		mm.openaiClient = &client
		logger.Info("OpenAI enabled", zap.String("model", defaultOpenAI))
	} else {
		logger.Info("OpenAI disabled (no API key)")
	}

	return mm, nil
}

func (mm *ModelManager) HasGemini() bool {
	return mm != nil && mm.geminiClient != nil
}

func (mm *ModelManager) HasOpenAI() bool {
	return mm != nil && mm.openaiClient != nil
}

// HasTextModel reports whether any text-capable provider is configured.
func (mm *ModelManager) HasTextModel() bool {
	return mm.HasGemini() || mm.HasOpenAI()
}

// GenerateText runs a prompt through Gemini, falling back to OpenAI when the
// fallback is enabled and Gemini is unavailable or errors.
func (mm *ModelManager) GenerateText(ctx context.Context, promptText string, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	if opts == nil {
		opts = &GenerateOptions{}
	}

	if mm.HasGemini() {
		text, err := mm.generateWithGemini(ctx, promptText, opts)
		if err == nil {
			return text, &GenerateMetadata{
				Provider: "Gemini",
				Model:    mm.getGeminiModel(opts),
			}, nil
		}

		mm.logger.Warn("Gemini generation failed", zap.Error(err))
		if !mm.enableFallback || !mm.HasOpenAI() {
			return "", nil, err
		}
	}

	if !mm.HasOpenAI() {
		return "", nil, fmt.Errorf("no text model configured")
	}

	text, err := mm.generateWithOpenAI(ctx, promptText, opts)
	if err != nil {
		return "", nil, err
	}

	return text, &GenerateMetadata{
		Provider:     "OpenAI",
		Model:        mm.getOpenAIModel(opts),
		UsedFallback: mm.HasGemini(),
	}, nil
}

// GenerateJSON generates with JSON output enforced and unmarshals the first
// balanced JSON object of the result into dest, stripping markdown fences
// and surrounding prose if the model added them anyway.
func (mm *ModelManager) GenerateJSON(ctx context.Context, promptText string, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	if opts == nil {
		opts = &GenerateOptions{}
	}
	opts.JSONMode = true

	text, metadata, err := mm.GenerateText(ctx, promptText, opts)
	if err != nil {
		return nil, err
	}

	cleaned, found := FirstJSONObject(StripCodeFences(text))
	if !found {
		return nil, fmt.Errorf("no JSON object in %s response", metadata.Provider)
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		previewLen := util.Min(len(cleaned), 200)
		mm.logger.Error("Failed to unmarshal JSON response",
			zap.String("provider", metadata.Provider),
			zap.Error(err),
			zap.String("response_preview", cleaned[:previewLen]),
		)
		return nil, fmt.Errorf("invalid JSON from %s: %w", metadata.Provider, err)
	}

	return metadata, nil
}

func (mm *ModelManager) getGeminiModel(opts *GenerateOptions) string {
	if opts != nil && opts.Model != "" {
		return opts.Model
	}
	return mm.defaultGeminiModel
}

func (mm *ModelManager) getOpenAIModel(opts *GenerateOptions) string {
	if opts != nil && opts.Model != "" {
		return opts.Model
	}
	return mm.defaultOpenAIModel
}

func (mm *ModelManager) generateWithGemini(ctx context.Context, promptText string, opts *GenerateOptions) (string, error) {
	modelName := mm.getGeminiModel(opts)

	genConfig := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		temp := opts.Temperature
		genConfig.Temperature = &temp
	}
	if opts.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = int32(opts.MaxOutputTokens)
	}
	if opts.JSONMode {
		genConfig.ResponseMIMEType = "application/json"
	}

	mm.logger.Debug("Generating with Gemini",
		zap.String("model", modelName),
		zap.Bool("json_mode", opts.JSONMode),
	)

	resp, err := mm.geminiClient.Models.GenerateContent(ctx, modelName, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: promptText},
			},
		},
	}, genConfig)
	if err != nil {
		return "", err
	}

	text := extractTextFromGeminiResponse(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return text, nil
}

func (mm *ModelManager) generateWithOpenAI(ctx context.Context, promptText string, opts *GenerateOptions) (string, error) {
	if mm.openaiClient == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	modelName := mm.getOpenAIModel(opts)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(promptText),
	}
	if opts.JSONMode {
		messages = []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You must respond with valid JSON only. Do not include any text outside the JSON object."),
			openai.UserMessage(promptText),
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: messages,
	}
	if opts.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxOutputTokens))
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(float64(opts.Temperature))
	}

	resp, err := mm.openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return text, nil
}

// StripCodeFences removes a surrounding markdown code fence from model
// output.
func StripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}

func extractTextFromGeminiResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "")
}
