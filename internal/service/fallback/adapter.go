package fallback

import (
	"context"

	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/internal/prompt"
	"github.com/kapu/roastmaster-go/internal/service/ai"
	"go.uber.org/zap"
)

// Generator is the slice of the model manager the fallback path needs.
type Generator interface {
	HasGemini() bool
	GenerateGrounded(ctx context.Context, promptText string) (*ai.SearchResult, error)
	GenerateJSON(ctx context.Context, promptText string, dest any, opts *ai.GenerateOptions) (*ai.GenerateMetadata, error)
}

// Adapter reconstructs a profile through web search plus generative
// extraction. The whole path is best effort: every failure mode collapses to
// "no result" rather than an error, so the resolver can report one clean
// message instead of a parsing stack.
type Adapter struct {
	generator Generator
	logger    *zap.Logger
}

func NewAdapter(generator Generator, logger *zap.Logger) *Adapter {
	return &Adapter{
		generator: generator,
		logger:    logger,
	}
}

// extractedProfile is the fixed shape the extraction prompt demands. Strings
// are nullable; counts default to 0.
type extractedProfile struct {
	Name           *string `json:"name"`
	Username       *string `json:"username"`
	Verified       bool    `json:"verified"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	FollowersCount int     `json:"followers_count"`
	FollowingCount int     `json:"following_count"`
	TweetCount     int     `json:"tweet_count"`
	ListedCount    int     `json:"listed_count"`
}

// Resolve derives a profile record for the handle. A nil record with a nil
// error means "no result". This path never yields a post sample.
func (a *Adapter) Resolve(ctx context.Context, handle string) (*domain.ProfileRecord, error) {
	if a.generator == nil || !a.generator.HasGemini() {
		a.logger.Info("Fallback source unavailable (no search credential)",
			zap.String("handle", handle))
		return nil, nil
	}

	searchPrompt := prompt.BuildProfileSearchPrompt(prompt.SearchPromptVars{Handle: handle})
	searchResult, err := a.generator.GenerateGrounded(ctx, searchPrompt)
	if err != nil {
		a.logger.Warn("Fallback search failed",
			zap.String("handle", handle),
			zap.Error(err),
		)
		return nil, nil
	}

	extractionPrompt := prompt.BuildProfileExtractionPrompt(prompt.ExtractionPromptVars{
		Handle:     handle,
		SearchText: searchResult.Text,
	})

	var extracted extractedProfile
	if _, err := a.generator.GenerateJSON(ctx, extractionPrompt, &extracted, nil); err != nil {
		a.logger.Warn("Fallback extraction failed",
			zap.String("handle", handle),
			zap.Error(err),
		)
		return nil, nil
	}

	if strValue(extracted.Name) == "" && strValue(extracted.Username) == "" {
		a.logger.Info("Fallback extraction produced an empty profile",
			zap.String("handle", handle))
		return nil, nil
	}

	record := a.toProfileRecord(handle, &extracted)

	a.logger.Info("Fallback profile resolved",
		zap.String("handle", handle),
		zap.Int("followers", record.Followers),
		zap.Int("search_sources", len(searchResult.Sources)),
	)

	return record, nil
}

func (a *Adapter) toProfileRecord(handle string, extracted *extractedProfile) *domain.ProfileRecord {
	username := strValue(extracted.Username)
	if username == "" {
		username = handle
	}

	displayName := strValue(extracted.Name)
	if displayName == "" {
		displayName = username
	}

	return &domain.ProfileRecord{
		ID:            handle,
		DisplayName:   displayName,
		Username:      username,
		Verified:      extracted.Verified,
		Bio:           strValue(extracted.Description),
		Location:      strValue(extracted.Location),
		Followers:     extracted.FollowersCount,
		Following:     extracted.FollowingCount,
		PostCount:     extracted.TweetCount,
		ListedCount:   extracted.ListedCount,
		FollowerRatio: domain.ComputeFollowerRatio(extracted.FollowersCount, extracted.FollowingCount),
		OriginSource:  domain.SourceFallback,
	}
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
