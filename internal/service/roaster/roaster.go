package roaster

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/internal/service/enrich"
	"github.com/kapu/roastmaster-go/internal/service/resolver"
	"go.uber.org/zap"
)

// SourceResolver resolves a query into a profile, handling source selection
// and escalation.
type SourceResolver interface {
	Resolve(ctx context.Context, query domain.ProfileQuery) (*resolver.Resolution, error)
}

// RoastWriter produces roast text for a resolved context.
type RoastWriter interface {
	Synthesize(ctx context.Context, rc *domain.RoastContext) string
}

// Enricher runs the optional augmentations.
type Enricher interface {
	Enrich(ctx context.Context, handle, avatarURL, roastText string) *enrich.Enrichment
}

// Service is the single inbound operation of the core: resolve a handle,
// roast it, enrich the roast.
type Service struct {
	resolver    SourceResolver
	synthesizer RoastWriter
	enricher    Enricher
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(sourceResolver SourceResolver, synthesizer RoastWriter, enricher Enricher, logger *zap.Logger) *Service {
	return &Service{
		resolver:    sourceResolver,
		synthesizer: synthesizer,
		enricher:    enricher,
		logger:      logger,
		now:         time.Now,
	}
}

// ResolveAndRoast runs the full pipeline for one query. Resolution failures
// are terminal; roast generation and enrichment only ever degrade.
func (s *Service) ResolveAndRoast(ctx context.Context, query domain.ProfileQuery) *domain.RoastResult {
	start := s.now()

	handle := domain.NormalizeHandle(query.Handle)
	if handle == "" {
		return domain.ErrorResult("", "That handle looks empty. Try again.")
	}

	normalized := domain.ProfileQuery{
		Handle:     handle,
		Preference: query.Preference,
	}
	if normalized.Preference == "" {
		normalized.Preference = domain.SourcePrimary
	}

	resolution, err := s.resolver.Resolve(ctx, normalized)
	if err != nil {
		s.logger.Warn("Profile resolution failed",
			zap.String("handle", handle),
			zap.String("preference", normalized.Preference.String()),
			zap.Error(err),
		)
		result := domain.ErrorResult(handle, userMessage(err))
		result.ElapsedMS = s.now().Sub(start).Milliseconds()
		return result
	}

	profile := resolution.Profile
	roastCtx := domain.NewRoastContext(*profile, resolution.Post, s.now())
	roastText := s.synthesizer.Synthesize(ctx, roastCtx)

	enrichment := s.enricher.Enrich(ctx, profile.Username, profile.AvatarURL, roastText)

	result := &domain.RoastResult{
		Status:        domain.StatusOk,
		Handle:        handle,
		Profile:       profile,
		Post:          resolution.Post,
		RoastText:     roastText,
		ImageCritique: enrichment.ImageCritique,
		Audio:         enrichment.Audio,
		ElapsedMS:     s.now().Sub(start).Milliseconds(),
	}

	s.logger.Info("Roast completed",
		zap.String("handle", handle),
		zap.String("origin", profile.OriginSource.String()),
		zap.Bool("escalated", resolution.Escalated),
		zap.Bool("has_critique", result.ImageCritique != ""),
		zap.Bool("has_audio", result.Audio != nil),
		zap.Int64("elapsed_ms", result.ElapsedMS),
	)

	return result
}

// userMessage keeps raw provider payloads away from the caller: taxonomy
// errors carry a human-readable message, anything else gets a generic one.
func userMessage(err error) string {
	var messaged interface{ UserMessage() string }
	if stderrors.As(err, &messaged) {
		return messaged.UserMessage()
	}
	return "Something went wrong resolving that profile. Try again shortly."
}
