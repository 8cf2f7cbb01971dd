package app

import (
	"context"
	"fmt"

	"github.com/kapu/roastmaster-go/internal/config"
	"github.com/kapu/roastmaster-go/internal/service/ai"
	"github.com/kapu/roastmaster-go/internal/service/enrich"
	"github.com/kapu/roastmaster-go/internal/service/fallback"
	"github.com/kapu/roastmaster-go/internal/service/resolver"
	"github.com/kapu/roastmaster-go/internal/service/roast"
	"github.com/kapu/roastmaster-go/internal/service/roaster"
	"github.com/kapu/roastmaster-go/internal/service/tts"
	"github.com/kapu/roastmaster-go/internal/service/xapi"
	"go.uber.org/zap"
)

// Container bundles the assembled service graph for the serving layer.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Roaster *roaster.Service
}

// Build assembles all services. Credential absence is reported per feature
// here and handled downstream as degradation; only client construction
// failures abort the build.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:   cfg.Gemini.APIKey,
		OpenAIAPIKey:   cfg.OpenAI.APIKey,
		EnableFallback: cfg.OpenAI.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}

	xClient := xapi.NewClient("", cfg.X.BearerToken, logger)
	fallbackAdapter := fallback.NewAdapter(modelManager, logger)
	sourceResolver := resolver.NewResolver(xClient, fallbackAdapter, cfg.X.BearerToken != "", logger)

	synthesizer := roast.NewSynthesizer(modelManager, logger)

	ttsClient := tts.NewClient("", cfg.ElevenLabs.APIKey, cfg.ElevenLabs.VoiceID, logger)
	enricher := enrich.NewService(modelManager, ttsClient, logger)

	if cfg.X.BearerToken == "" {
		logger.Warn("X_BEARER_TOKEN not set; primary lookups will fail with a configuration error")
	}
	if !ttsClient.Available() {
		logger.Info("ElevenLabs disabled (no API key); audio roasts off")
	}

	roasterSvc := roaster.NewService(sourceResolver, synthesizer, enricher, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Roaster: roasterSvc,
	}, nil
}
