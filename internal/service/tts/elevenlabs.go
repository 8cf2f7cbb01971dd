package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kapu/roastmaster-go/internal/constants"
	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/pkg/errors"
	"go.uber.org/zap"
)

// Client calls the ElevenLabs text-to-speech endpoint. Only a throttling
// response is retried, with a fixed delay and a bounded number of attempts;
// every other failure gives up immediately.
type Client struct {
	baseURL    string
	apiKey     string
	voiceID    string
	httpClient *http.Client
	logger     *zap.Logger
	maxRetries int
	retryDelay time.Duration
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func NewClient(baseURL, apiKey, voiceID string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = constants.APIConfig.ElevenLabsBaseURL
	}
	if voiceID == "" {
		voiceID = constants.TTSConfig.DefaultVoiceID
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		voiceID: voiceID,
		httpClient: &http.Client{
			Timeout: constants.APIConfig.ElevenLabsTimeout,
		},
		logger:     logger,
		maxRetries: constants.TTSConfig.MaxRetries,
		retryDelay: constants.TTSConfig.RetryDelay,
	}
}

// Available reports whether a speech credential is configured.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

// Synthesize renders text to an audio clip. Returns an error for any failure
// mode; the caller degrades to "no audio".
func (c *Client) Synthesize(ctx context.Context, text string) (*domain.AudioClip, error) {
	if !c.Available() {
		return nil, errors.NewConfigurationError("no ElevenLabs API key configured")
	}
	if text == "" {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	payload, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: constants.TTSConfig.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       constants.TTSConfig.Stability,
			SimilarityBoost: constants.TTSConfig.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, err
	}

	remaining := c.maxRetries
	for {
		clip, retryable, err := c.attempt(ctx, payload)
		if err == nil {
			return clip, nil
		}

		if !retryable || remaining == 0 {
			return nil, err
		}

		remaining--
		c.logger.Warn("Speech synthesis throttled, retrying",
			zap.Int("remaining_attempts", remaining+1),
			zap.Duration("delay", c.retryDelay),
		)

		select {
		case <-time.After(c.retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (c *Client) attempt(ctx context.Context, payload []byte) (*domain.AudioClip, bool, error) {
	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, c.voiceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, false, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, errors.NewRateLimitedError("ElevenLabs rate limit reached", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, errors.NewUpstreamError(
			fmt.Sprintf("ElevenLabs API error: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"body": string(body),
			},
		)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}
	if len(audio) == 0 {
		return nil, false, fmt.Errorf("empty audio payload")
	}

	return &domain.AudioClip{
		Bytes:    audio,
		MimeType: "audio/mpeg",
		VoiceID:  c.voiceID,
	}, false, nil
}
