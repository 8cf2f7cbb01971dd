package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/internal/service/ai"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	hasGemini   bool
	searchText  string
	searchErr   error
	extractText string
	extractErr  error

	searchCalls  int
	extractCalls int
	lastExtract  string
}

func (f *fakeGenerator) HasGemini() bool { return f.hasGemini }

func (f *fakeGenerator) GenerateGrounded(_ context.Context, _ string) (*ai.SearchResult, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &ai.SearchResult{Text: f.searchText}, nil
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, promptText string, dest any, _ *ai.GenerateOptions) (*ai.GenerateMetadata, error) {
	f.extractCalls++
	f.lastExtract = promptText
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	raw, found := ai.FirstJSONObject(ai.StripCodeFences(f.extractText))
	if !found {
		return nil, fmt.Errorf("no JSON object in gemini response")
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return nil, err
	}
	return &ai.GenerateMetadata{Provider: "gemini"}, nil
}

func TestAdapterResolveSuccess(t *testing.T) {
	gen := &fakeGenerator{
		hasGemini:  true,
		searchText: "Kay Rodriguez (@test_user) has about 500 followers.",
		extractText: "```json\n" + `{"name":"Kay Rodriguez","username":"test_user","verified":false,` +
			`"description":"chaos enthusiast","location":null,"followers_count":500,` +
			`"following_count":100,"tweet_count":2300,"listed_count":3}` + "\n```",
	}
	adapter := NewAdapter(gen, zap.NewNop())

	record, err := adapter.Resolve(context.Background(), "test_user")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}

	if record.OriginSource != domain.SourceFallback {
		t.Fatalf("expected fallback origin, got %s", record.OriginSource)
	}
	if record.ID != "test_user" {
		t.Fatalf("fallback records take the handle as ID, got %q", record.ID)
	}
	if record.DisplayName != "Kay Rodriguez" || record.Followers != 500 {
		t.Fatalf("unexpected mapping: %+v", record)
	}
	if record.FollowerRatio != 5.0 {
		t.Fatalf("expected ratio 5.0, got %v", record.FollowerRatio)
	}
	if record.Location != "" {
		t.Fatalf("null location must map to empty, got %q", record.Location)
	}
	if !strings.Contains(gen.lastExtract, gen.searchText) {
		t.Fatal("extraction prompt must embed the search text")
	}
}

func TestAdapterResolveNoGemini(t *testing.T) {
	gen := &fakeGenerator{hasGemini: false}
	adapter := NewAdapter(gen, zap.NewNop())

	record, err := adapter.Resolve(context.Background(), "test_user")
	if record != nil || err != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", record, err)
	}
	if gen.searchCalls != 0 {
		t.Fatal("must not search without a credential")
	}
}

func TestAdapterResolveCollapsesFailuresToNoResult(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{
			name: "search error",
			gen:  &fakeGenerator{hasGemini: true, searchErr: errors.New("quota")},
		},
		{
			name: "extraction error",
			gen:  &fakeGenerator{hasGemini: true, searchText: "x", extractErr: errors.New("timeout")},
		},
		{
			name: "no JSON in response",
			gen:  &fakeGenerator{hasGemini: true, searchText: "x", extractText: "I could not find this account."},
		},
		{
			name: "malformed JSON",
			gen:  &fakeGenerator{hasGemini: true, searchText: "x", extractText: `{"name": "Kay", "followers_count": "lots"}`},
		},
		{
			name: "empty identity",
			gen:  &fakeGenerator{hasGemini: true, searchText: "x", extractText: `{"name":null,"username":null,"followers_count":9}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewAdapter(tt.gen, zap.NewNop())
			record, err := adapter.Resolve(context.Background(), "test_user")
			if err != nil {
				t.Fatalf("failures must not surface as errors, got %v", err)
			}
			if record != nil {
				t.Fatalf("expected no result, got %+v", record)
			}
		})
	}
}

func TestAdapterResolveDefaultsUsernameToHandle(t *testing.T) {
	gen := &fakeGenerator{
		hasGemini:   true,
		searchText:  "x",
		extractText: `{"name":"Mystery Person","username":null}`,
	}
	adapter := NewAdapter(gen, zap.NewNop())

	record, err := adapter.Resolve(context.Background(), "test_user")
	if err != nil || record == nil {
		t.Fatalf("expected a record, got (%v, %v)", record, err)
	}
	if record.Username != "test_user" {
		t.Fatalf("expected handle as username, got %q", record.Username)
	}
}
