package xapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kapu/roastmaster-go/pkg/errors"
	"go.uber.org/zap"
)

const userJSON = `{
	"data": {
		"id": "123",
		"name": "Kay Rodriguez",
		"username": "test_user",
		"verified": true,
		"description": "chaos enthusiast",
		"profile_image_url": "https://pbs.twimg.com/profile_images/1/abc_normal.jpg",
		"location": "Austin, TX",
		"public_metrics": {
			"followers_count": 1000,
			"following_count": 10,
			"tweet_count": 230,
			"listed_count": 4
		}
	}
}`

const tweetsJSON = `{
	"data": [{
		"id": "900",
		"text": "hot take incoming",
		"created_at": "2026-08-28T12:00:00Z",
		"public_metrics": {
			"like_count": 12,
			"reply_count": 3,
			"retweet_count": 2,
			"quote_count": 1
		}
	}]
}`

func newTestServer(t *testing.T, userHandler, tweetHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/by/username/", userHandler)
	mux.HandleFunc("/users/123/tweets", tweetHandler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func serveJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestLookupMapsProfileAndPost(t *testing.T) {
	var gotAuth string
	server := newTestServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(userJSON))
		},
		serveJSON(http.StatusOK, tweetsJSON),
	)

	client := NewClient(server.URL, "secret-token", zap.NewNop())
	record, post, err := client.Lookup(context.Background(), "test_user")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if record.ID != "123" || record.DisplayName != "Kay Rodriguez" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Followers != 1000 || record.Following != 10 {
		t.Fatalf("metrics not mapped: %+v", record)
	}
	if record.FollowerRatio != 100.0 {
		t.Fatalf("expected ratio 100.0, got %v", record.FollowerRatio)
	}
	if !strings.Contains(record.AvatarURL, "_400x400") {
		t.Fatalf("avatar variant not upgraded: %q", record.AvatarURL)
	}
	if post == nil || post.Text != "hot take incoming" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Engagement() != 18 {
		t.Fatalf("expected engagement 18, got %d", post.Engagement())
	}
}

func TestLookupNullDataIsNotFound(t *testing.T) {
	server := newTestServer(t,
		serveJSON(http.StatusOK, `{"data": null, "errors": [{"detail": "Could not find user"}]}`),
		serveJSON(http.StatusOK, tweetsJSON),
	)

	client := NewClient(server.URL, "secret-token", zap.NewNop())
	_, _, err := client.Lookup(context.Background(), "ghost_user")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "@ghost_user") {
		t.Fatalf("expected the handle in the message, got %q", err.Error())
	}
}

func TestLookupClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "429 is rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"detail": "Too Many Requests"}`,
			check:  errors.IsRateLimited,
		},
		{
			name:   "usage cap detail is rate limited despite the status",
			status: http.StatusForbidden,
			body:   `{"detail": "Usage cap exceeded: monthly product cap"}`,
			check:  errors.IsRateLimited,
		},
		{
			name:   "404 is not found",
			status: http.StatusNotFound,
			body:   `{"errors": [{"detail": "Could not find user with username"}]}`,
			check:  errors.IsNotFound,
		},
		{
			name:   "500 is an upstream failure",
			status: http.StatusInternalServerError,
			body:   `{"detail": "Something went wrong"}`,
			check: func(err error) bool {
				return err != nil && !errors.IsRateLimited(err) && !errors.IsNotFound(err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t,
				serveJSON(tt.status, tt.body),
				serveJSON(http.StatusOK, tweetsJSON),
			)

			client := NewClient(server.URL, "secret-token", zap.NewNop())
			_, _, err := client.Lookup(context.Background(), "test_user")
			if !tt.check(err) {
				t.Fatalf("wrong classification: %v", err)
			}
		})
	}
}

func TestLookupPostFailureIsNonFatal(t *testing.T) {
	server := newTestServer(t,
		serveJSON(http.StatusOK, userJSON),
		serveJSON(http.StatusTooManyRequests, `{"detail": "Too Many Requests"}`),
	)

	client := NewClient(server.URL, "secret-token", zap.NewNop())
	record, post, err := client.Lookup(context.Background(), "test_user")
	if err != nil {
		t.Fatalf("post failure must not fail the lookup, got %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}
	if post != nil {
		t.Fatalf("expected nil post sample, got %+v", post)
	}
}

func TestLookupEmptyTweetData(t *testing.T) {
	server := newTestServer(t,
		serveJSON(http.StatusOK, userJSON),
		serveJSON(http.StatusOK, `{"data": []}`),
	)

	client := NewClient(server.URL, "secret-token", zap.NewNop())
	_, post, err := client.Lookup(context.Background(), "test_user")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if post != nil {
		t.Fatalf("expected nil post for an account with no posts, got %+v", post)
	}
}

func TestNormalizeAvatarURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://pbs.twimg.com/a_normal.jpg", "https://pbs.twimg.com/a_400x400.jpg"},
		{"https://pbs.twimg.com/a_400x400.jpg", "https://pbs.twimg.com/a_400x400.jpg"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAvatarURL(tt.input); got != tt.want {
			t.Errorf("NormalizeAvatarURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
