package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kapu/roastmaster-go/internal/constants"
	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/pkg/errors"
	"go.uber.org/zap"
)

const (
	userFields  = "description,profile_image_url,public_metrics,location,verified,created_at"
	tweetFields = "created_at,public_metrics,text"
)

// Client queries the X API v2 with a bearer credential.
type Client struct {
	baseURL    string
	bearer     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, bearer string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = constants.APIConfig.XBaseURL
	}
	return &Client{
		baseURL: baseURL,
		bearer:  bearer,
		httpClient: &http.Client{
			Timeout: constants.APIConfig.XTimeout,
		},
		logger: logger,
	}
}

// Lookup resolves a normalized handle into a profile record plus, best
// effort, its most recent original post. A failing post lookup degrades to a
// nil sample and never fails the profile result.
func (c *Client) Lookup(ctx context.Context, handle string) (*domain.ProfileRecord, *domain.PostSample, error) {
	var userResp userResponse
	path := fmt.Sprintf("/users/by/username/%s?user.fields=%s", url.PathEscape(handle), userFields)
	if err := c.doRequest(ctx, path, &userResp); err != nil {
		return nil, nil, err
	}

	if userResp.Data == nil {
		return nil, nil, errors.NewNotFoundError(
			fmt.Sprintf("Could not find @%s on X. Double-check the spelling.", handle),
			handle,
		)
	}

	record := userResp.toProfileRecord()
	post := c.fetchLatestPost(ctx, userResp.Data.ID)

	c.logger.Info("Primary profile resolved",
		zap.String("handle", handle),
		zap.Int("followers", record.Followers),
		zap.Bool("has_post", post != nil),
	)

	return &record, post, nil
}

func (c *Client) fetchLatestPost(ctx context.Context, userID string) *domain.PostSample {
	var tweetResp tweetResponse
	path := fmt.Sprintf("/users/%s/tweets?max_results=1&tweet.fields=%s&exclude=retweets,replies",
		url.PathEscape(userID), tweetFields)

	if err := c.doRequest(ctx, path, &tweetResp); err != nil {
		// Protected accounts and per-endpoint throttling land here; the
		// profile result still stands without a post sample.
		c.logger.Warn("Post lookup failed, continuing without sample",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil
	}

	return tweetResp.toPostSample()
}

func (c *Client) doRequest(ctx context.Context, path string, dest any) error {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.NewUpstreamError("failed to create request", 500, map[string]any{
			"url": reqURL,
		}).WithCause(err)
	}

	req.Header.Set("Authorization", "Bearer "+c.bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewUpstreamError("Unable to reach X right now.", 502, map[string]any{
			"url": reqURL,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewUpstreamError("failed to read response", resp.StatusCode, nil).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyFailure(resp.StatusCode, body)
	}

	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return errors.NewUpstreamError("failed to decode X response", resp.StatusCode, nil).WithCause(err)
		}
	}

	return nil
}

// classifyFailure maps a non-success X response onto the error taxonomy:
// 429 or throttling language escalates, 404/no-match is definitive, the rest
// is a generic upstream failure carrying the provider detail when present.
func (c *Client) classifyFailure(statusCode int, body []byte) error {
	detail := extractErrorDetail(body)

	if statusCode == http.StatusTooManyRequests || mentionsThrottling(detail) {
		return errors.NewRateLimitedError("X API rate limit reached", statusCode)
	}

	if statusCode == http.StatusNotFound || mentionsNoMatch(detail) {
		return errors.NewNotFoundError("Could not find that handle on X. Double-check the spelling.", "")
	}

	message := detail
	if message == "" {
		message = fmt.Sprintf("X API error: %d", statusCode)
	}

	return errors.NewUpstreamError(message, statusCode, map[string]any{
		"body": string(body),
	})
}

func extractErrorDetail(body []byte) string {
	var envelope struct {
		Errors []apiErrorDetail `json:"errors"`
		Detail string           `json:"detail"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return ""
	}
	if len(envelope.Errors) > 0 && envelope.Errors[0].Detail != "" {
		return envelope.Errors[0].Detail
	}
	return envelope.Detail
}

func mentionsThrottling(detail string) bool {
	lower := strings.ToLower(detail)
	return strings.Contains(lower, "too many requests") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "throttl") ||
		strings.Contains(lower, "usage cap")
}

func mentionsNoMatch(detail string) bool {
	lower := strings.ToLower(detail)
	return strings.Contains(lower, "could not find") ||
		strings.Contains(lower, "not found")
}

// NormalizeAvatarURL upgrades the X thumbnail variant to the 400x400 one.
func NormalizeAvatarURL(avatarURL string) string {
	if avatarURL == "" {
		return ""
	}
	return strings.Replace(avatarURL, "_normal", "_400x400", 1)
}
