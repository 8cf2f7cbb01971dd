package domain

import (
	"math"
	"time"
)

// RoastContext is the derived, read-only input to text generation. It is
// never persisted.
type RoastContext struct {
	Profile           ProfileRecord
	Post              *PostSample
	AvgEngagement     int
	LastActivityHours *int
}

// NewRoastContext derives engagement and recency figures from a resolved
// profile and its optional post sample.
func NewRoastContext(profile ProfileRecord, post *PostSample, now time.Time) *RoastContext {
	ctx := &RoastContext{
		Profile: profile,
		Post:    post,
	}

	if post != nil {
		ctx.AvgEngagement = post.Engagement()

		hours := int(math.Round(now.Sub(post.CreatedAt).Hours()))
		if hours < 0 {
			hours = 0
		}
		ctx.LastActivityHours = &hours
	}

	return ctx
}

// RoastStatus is the terminal outcome of one request.
type RoastStatus string

const (
	StatusOk    RoastStatus = "ok"
	StatusError RoastStatus = "error"
)

// AudioClip is a synthesized voice rendition of the roast text.
type AudioClip struct {
	Bytes    []byte `json:"-"`
	MimeType string `json:"mime_type"`
	VoiceID  string `json:"voice_id"`
}

// RoastResult is the aggregate output of one request. It is constructed once
// per request and immutable after return.
type RoastResult struct {
	Status        RoastStatus    `json:"status"`
	Handle        string         `json:"handle,omitempty"`
	Profile       *ProfileRecord `json:"profile,omitempty"`
	Post          *PostSample    `json:"post,omitempty"`
	RoastText     string         `json:"roast_text,omitempty"`
	ImageCritique string         `json:"image_critique,omitempty"`
	Audio         *AudioClip     `json:"audio,omitempty"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	ElapsedMS     int64          `json:"elapsed_ms"`
}

// ErrorResult builds a terminal failure result.
func ErrorResult(handle, message string) *RoastResult {
	return &RoastResult{
		Status:       StatusError,
		Handle:       handle,
		ErrorMessage: message,
	}
}
