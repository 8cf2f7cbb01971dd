package resolver

import (
	"context"
	"fmt"

	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/pkg/errors"
	"go.uber.org/zap"
)

// PrimarySource is the authoritative structured API path.
type PrimarySource interface {
	Lookup(ctx context.Context, handle string) (*domain.ProfileRecord, *domain.PostSample, error)
}

// FallbackSource is the best-effort search-and-extract path. A nil record
// with a nil error means "no result".
type FallbackSource interface {
	Resolve(ctx context.Context, handle string) (*domain.ProfileRecord, error)
}

// Resolution is the terminal success payload of one resolution run.
type Resolution struct {
	Profile   *domain.ProfileRecord
	Post      *domain.PostSample
	Escalated bool
}

// state enumerates the transition states of a single resolution run. Keeping
// them explicit makes the at-most-one-escalation rule checkable: the only
// edge into stateFallbackOnly from stateTryPrimary sets the escalated latch,
// and no edge leaves stateFallbackOnly back to stateTryPrimary.
type state int

const (
	stateTryPrimary state = iota
	stateFallbackOnly
	stateResolved
)

// Resolver selects a source for a query, escalates from primary to fallback
// on rate limiting (at most once), and normalizes the outcome.
type Resolver struct {
	primary              PrimarySource
	fallback             FallbackSource
	hasPrimaryCredential bool
	logger               *zap.Logger
}

func NewResolver(primary PrimarySource, fallback FallbackSource, hasPrimaryCredential bool, logger *zap.Logger) *Resolver {
	return &Resolver{
		primary:              primary,
		fallback:             fallback,
		hasPrimaryCredential: hasPrimaryCredential,
		logger:               logger,
	}
}

// Resolve runs the source-selection state machine for one query. The handle
// must already be normalized.
func (r *Resolver) Resolve(ctx context.Context, query domain.ProfileQuery) (*Resolution, error) {
	current := stateTryPrimary
	if query.Preference == domain.SourceFallback {
		current = stateFallbackOnly
	}

	resolution := &Resolution{}

	for {
		switch current {
		case stateTryPrimary:
			// A missing credential is a terminal configuration error, not a
			// fallback trigger.
			if !r.hasPrimaryCredential {
				return nil, errors.NewConfigurationError("Server missing X_BEARER_TOKEN. Add it to .env and restart.")
			}

			profile, post, err := r.primary.Lookup(ctx, query.Handle)
			if err == nil {
				resolution.Profile = profile
				resolution.Post = post
				current = stateResolved
				continue
			}

			if errors.IsRateLimited(err) {
				r.logger.Warn("Primary source rate limited, escalating to fallback",
					zap.String("handle", query.Handle),
				)
				resolution.Escalated = true
				current = stateFallbackOnly
				continue
			}

			// NotFound and generic upstream failures are definitive: a
			// lower-fidelity source must not silently contradict them.
			return nil, err

		case stateFallbackOnly:
			record, err := r.fallback.Resolve(ctx, query.Handle)
			if err != nil {
				// The adapter contract folds its own failures into "no
				// result"; an error here still degrades the same way.
				r.logger.Warn("Fallback source errored",
					zap.String("handle", query.Handle),
					zap.Error(err),
				)
				record = nil
			}

			if record == nil {
				return nil, r.emptyResolutionError(query.Handle, resolution.Escalated)
			}

			resolution.Profile = record
			resolution.Post = nil
			current = stateResolved

		case stateResolved:
			return resolution, nil
		}
	}
}

func (r *Resolver) emptyResolutionError(handle string, escalated bool) error {
	if escalated {
		return errors.NewResolutionEmptyError(fmt.Sprintf(
			"X rate-limited the lookup for @%s and the fallback search found no usable profile either. Try again in a few minutes.",
			handle,
		))
	}
	return errors.NewResolutionEmptyError(fmt.Sprintf(
		"The fallback lookup found no usable profile for @%s. It may be unconfigured on this server, or the handle too obscure to search.",
		handle,
	))
}
