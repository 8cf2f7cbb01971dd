package roast

import (
	"context"
	"strings"

	"github.com/kapu/roastmaster-go/internal/constants"
	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/internal/prompt"
	"github.com/kapu/roastmaster-go/internal/service/ai"
	"github.com/kapu/roastmaster-go/internal/util"
	"go.uber.org/zap"
)

// TextGenerator is the slice of the model manager roast synthesis needs.
type TextGenerator interface {
	HasTextModel() bool
	GenerateText(ctx context.Context, promptText string, opts *ai.GenerateOptions) (string, *ai.GenerateMetadata, error)
}

// Synthesizer turns a roast context into roast text, preferring a generative
// rendition and guaranteeing the deterministic composition as a floor.
type Synthesizer struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewSynthesizer(generator TextGenerator, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		generator: generator,
		logger:    logger,
	}
}

// Synthesize returns a non-empty roast for any resolved profile. Generative
// failures of every kind (missing credential, call error, empty or
// off-contract output) fall through to Compose.
func (s *Synthesizer) Synthesize(ctx context.Context, rc *domain.RoastContext) string {
	if s.generator != nil && s.generator.HasTextModel() {
		if text, ok := s.tryGenerate(ctx, rc); ok {
			return text
		}
	}

	s.logger.Info("Using deterministic roast composition",
		zap.String("handle", rc.Profile.Username))
	return Compose(rc)
}

func (s *Synthesizer) tryGenerate(ctx context.Context, rc *domain.RoastContext) (string, bool) {
	vars := prompt.RoastPromptVars{
		Handle:         rc.Profile.Username,
		DisplayName:    rc.Profile.DisplayName,
		Verified:       rc.Profile.Verified,
		Bio:            util.CollapseWhitespace(rc.Profile.Bio),
		Location:       rc.Profile.Location,
		Followers:      rc.Profile.Followers,
		Following:      rc.Profile.Following,
		PostCount:      rc.Profile.PostCount,
		FollowerRatio:  rc.Profile.FollowerRatio,
		AvgEngagement:  rc.AvgEngagement,
		HoursSincePost: rc.LastActivityHours,
		MetricsSparse:  rc.Profile.OriginSource == domain.SourceFallback,
		Closer:         constants.RoastConfig.Closer,
	}
	if rc.Post != nil {
		vars.LastPostText = util.TruncateString(util.CollapseWhitespace(rc.Post.Text), 140)
	}

	text, metadata, err := s.generator.GenerateText(ctx, prompt.BuildRoastPrompt(vars), &ai.GenerateOptions{
		Temperature:     0.9,
		MaxOutputTokens: constants.RoastConfig.MaxRoastTokens,
	})
	if err != nil {
		s.logger.Warn("Generative roast failed",
			zap.String("handle", rc.Profile.Username),
			zap.Error(err),
		)
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" || !strings.HasSuffix(text, constants.RoastConfig.Closer) {
		s.logger.Warn("Generative roast violated the style contract",
			zap.String("handle", rc.Profile.Username),
			zap.Int("length", len(text)),
		)
		return "", false
	}

	s.logger.Info("Generative roast produced",
		zap.String("handle", rc.Profile.Username),
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Bool("used_fallback", metadata.UsedFallback),
	)

	return text, true
}
