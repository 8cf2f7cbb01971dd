package enrich

import (
	"context"
	"strings"

	"github.com/kapu/roastmaster-go/internal/constants"
	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/internal/prompt"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// VisionGenerator is the slice of the model manager the image critique needs.
type VisionGenerator interface {
	HasOpenAI() bool
	GenerateVision(ctx context.Context, promptText, imageURL string, maxTokens int) (string, error)
}

// SpeechSynthesizer renders text to audio.
type SpeechSynthesizer interface {
	Available() bool
	Synthesize(ctx context.Context, text string) (*domain.AudioClip, error)
}

// Enrichment carries the two optional augmentations. Either field may be
// absent without affecting the request outcome.
type Enrichment struct {
	ImageCritique string
	Audio         *domain.AudioClip
}

// Service fans out the two independent enrichment calls concurrently and
// swallows their individual failures.
type Service struct {
	vision VisionGenerator
	speech SpeechSynthesizer
	logger *zap.Logger
}

func NewService(vision VisionGenerator, speech SpeechSynthesizer, logger *zap.Logger) *Service {
	return &Service{
		vision: vision,
		speech: speech,
		logger: logger,
	}
}

// Enrich launches the avatar critique and the audio synthesis in parallel
// and waits for both. The combined latency is the max of the two, and a
// failure in one never suppresses the other.
func (s *Service) Enrich(ctx context.Context, handle, avatarURL, roastText string) *Enrichment {
	result := &Enrichment{}

	p := pool.New()
	p.Go(func() {
		result.ImageCritique = s.critiqueAvatar(ctx, handle, avatarURL)
	})
	p.Go(func() {
		result.Audio = s.synthesizeAudio(ctx, handle, roastText)
	})
	p.Wait()

	return result
}

func (s *Service) critiqueAvatar(ctx context.Context, handle, avatarURL string) string {
	if avatarURL == "" {
		return ""
	}
	if s.vision == nil || !s.vision.HasOpenAI() {
		s.logger.Debug("Image critique skipped (no vision credential)",
			zap.String("handle", handle))
		return ""
	}

	promptText := prompt.BuildImageCritiquePrompt(prompt.CritiquePromptVars{Handle: handle})

	critique, err := s.vision.GenerateVision(ctx, promptText, avatarURL, constants.RoastConfig.MaxCritiqueTokens)
	if err != nil {
		s.logger.Warn("Image critique failed",
			zap.String("handle", handle),
			zap.Error(err),
		)
		return ""
	}

	return strings.TrimSpace(critique)
}

func (s *Service) synthesizeAudio(ctx context.Context, handle, roastText string) *domain.AudioClip {
	if roastText == "" {
		return nil
	}
	if s.speech == nil || !s.speech.Available() {
		s.logger.Debug("Audio synthesis skipped (no speech credential)",
			zap.String("handle", handle))
		return nil
	}

	clip, err := s.speech.Synthesize(ctx, roastText)
	if err != nil {
		s.logger.Warn("Audio synthesis failed",
			zap.String("handle", handle),
			zap.Error(err),
		)
		return nil
	}

	s.logger.Info("Audio roast synthesized",
		zap.String("handle", handle),
		zap.String("voice_id", clip.VoiceID),
		zap.Int("bytes", len(clip.Bytes)),
	)

	return clip
}
