package resolver

import (
	"context"
	"strings"
	"testing"

	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/pkg/errors"
	"go.uber.org/zap"
)

type fakePrimary struct {
	profile *domain.ProfileRecord
	post    *domain.PostSample
	err     error
	calls   int
}

func (f *fakePrimary) Lookup(_ context.Context, _ string) (*domain.ProfileRecord, *domain.PostSample, error) {
	f.calls++
	return f.profile, f.post, f.err
}

type fakeFallback struct {
	record *domain.ProfileRecord
	err    error
	calls  int
}

func (f *fakeFallback) Resolve(_ context.Context, _ string) (*domain.ProfileRecord, error) {
	f.calls++
	return f.record, f.err
}

func primaryRecord() *domain.ProfileRecord {
	return &domain.ProfileRecord{
		ID:           "1",
		Username:     "test_user",
		Followers:    1000,
		Following:    10,
		OriginSource: domain.SourcePrimary,
	}
}

func fallbackRecord() *domain.ProfileRecord {
	return &domain.ProfileRecord{
		Username:     "test_user",
		OriginSource: domain.SourceFallback,
	}
}

func TestResolvePrimarySuccess(t *testing.T) {
	primary := &fakePrimary{profile: primaryRecord(), post: &domain.PostSample{ID: "9"}}
	fb := &fakeFallback{}
	r := NewResolver(primary, fb, true, zap.NewNop())

	resolution, err := r.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "test_user",
		Preference: domain.SourcePrimary,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if resolution.Profile.OriginSource != domain.SourcePrimary {
		t.Fatalf("expected primary origin, got %s", resolution.Profile.OriginSource)
	}
	if resolution.Post == nil {
		t.Fatal("expected post sample to pass through")
	}
	if resolution.Escalated {
		t.Fatal("successful primary lookup must not be marked escalated")
	}
	if fb.calls != 0 {
		t.Fatalf("fallback must not be invoked, got %d calls", fb.calls)
	}
}

func TestResolveEscalatesOnRateLimitExactlyOnce(t *testing.T) {
	primary := &fakePrimary{err: errors.NewRateLimitedError("X API rate limit reached", 429)}
	fb := &fakeFallback{record: fallbackRecord()}
	r := NewResolver(primary, fb, true, zap.NewNop())

	resolution, err := r.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "test_user",
		Preference: domain.SourcePrimary,
	})
	if err != nil {
		t.Fatalf("expected escalated success, got %v", err)
	}

	if primary.calls != 1 {
		t.Fatalf("primary must be invoked exactly once, got %d", primary.calls)
	}
	if fb.calls != 1 {
		t.Fatalf("fallback must be invoked exactly once, got %d", fb.calls)
	}
	if !resolution.Escalated {
		t.Fatal("expected escalation to be recorded")
	}
	if resolution.Profile.OriginSource != domain.SourceFallback {
		t.Fatalf("expected fallback origin, got %s", resolution.Profile.OriginSource)
	}
	if resolution.Post != nil {
		t.Fatal("fallback resolution must not carry a post sample")
	}
}

func TestResolveForcedFallbackNeverTouchesPrimary(t *testing.T) {
	primary := &fakePrimary{profile: primaryRecord()}
	fb := &fakeFallback{record: fallbackRecord()}
	r := NewResolver(primary, fb, true, zap.NewNop())

	resolution, err := r.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "test_user",
		Preference: domain.SourceFallback,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if primary.calls != 0 {
		t.Fatalf("primary must never be invoked on forced fallback, got %d calls", primary.calls)
	}
	if resolution.Escalated {
		t.Fatal("forced fallback is not an escalation")
	}
	if resolution.Profile.OriginSource != domain.SourceFallback {
		t.Fatalf("expected fallback origin, got %s", resolution.Profile.OriginSource)
	}
}

func TestResolveNotFoundIsTerminal(t *testing.T) {
	primary := &fakePrimary{err: errors.NewNotFoundError("Could not find that handle on X.", "ghost")}
	fb := &fakeFallback{record: fallbackRecord()}
	r := NewResolver(primary, fb, true, zap.NewNop())

	_, err := r.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "ghost",
		Preference: domain.SourcePrimary,
	})
	if !errors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if fb.calls != 0 {
		t.Fatalf("a definitive not-found must not trigger fallback, got %d calls", fb.calls)
	}
}

func TestResolveUpstreamFailureIsTerminal(t *testing.T) {
	primary := &fakePrimary{err: errors.NewUpstreamError("X API error: 503", 503, nil)}
	fb := &fakeFallback{record: fallbackRecord()}
	r := NewResolver(primary, fb, true, zap.NewNop())

	_, err := r.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "test_user",
		Preference: domain.SourcePrimary,
	})
	if err == nil {
		t.Fatal("expected terminal upstream failure")
	}
	if fb.calls != 0 {
		t.Fatalf("generic upstream failure must not trigger fallback, got %d calls", fb.calls)
	}
}

func TestResolveMissingCredentialIsConfigurationError(t *testing.T) {
	primary := &fakePrimary{profile: primaryRecord()}
	fb := &fakeFallback{record: fallbackRecord()}
	r := NewResolver(primary, fb, false, zap.NewNop())

	_, err := r.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "test_user",
		Preference: domain.SourcePrimary,
	})
	if !errors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if primary.calls != 0 || fb.calls != 0 {
		t.Fatal("missing credential must not invoke any source")
	}
}

func TestResolveDistinguishesEmptyFallbackMessages(t *testing.T) {
	escalated := NewResolver(
		&fakePrimary{err: errors.NewRateLimitedError("throttled", 429)},
		&fakeFallback{},
		true,
		zap.NewNop(),
	)
	_, escErr := escalated.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "test_user",
		Preference: domain.SourcePrimary,
	})
	if !errors.IsResolutionEmpty(escErr) {
		t.Fatalf("expected resolution-empty error, got %v", escErr)
	}
	if !strings.Contains(escErr.Error(), "rate-limited") {
		t.Fatalf("escalation failure must mention the rate limit, got %q", escErr.Error())
	}

	forced := NewResolver(&fakePrimary{}, &fakeFallback{}, true, zap.NewNop())
	_, forcedErr := forced.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "test_user",
		Preference: domain.SourceFallback,
	})
	if !errors.IsResolutionEmpty(forcedErr) {
		t.Fatalf("expected resolution-empty error, got %v", forcedErr)
	}
	if strings.Contains(forcedErr.Error(), "rate-limited") {
		t.Fatalf("forced-fallback failure must not mention a rate limit, got %q", forcedErr.Error())
	}
}

func TestResolveFallbackErrorDegradesToEmpty(t *testing.T) {
	fb := &fakeFallback{err: errors.NewUpstreamError("search exploded", 500, nil)}
	r := NewResolver(&fakePrimary{}, fb, true, zap.NewNop())

	_, err := r.Resolve(context.Background(), domain.ProfileQuery{
		Handle:     "test_user",
		Preference: domain.SourceFallback,
	})
	if !errors.IsResolutionEmpty(err) {
		t.Fatalf("fallback errors must collapse to resolution-empty, got %v", err)
	}
}
