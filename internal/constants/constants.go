package constants

import "time"

var APIConfig = struct {
	XBaseURL          string
	XTimeout          time.Duration
	ElevenLabsBaseURL string
	ElevenLabsTimeout time.Duration
}{
	XBaseURL:          "https://api.x.com/2",
	XTimeout:          10 * time.Second,
	ElevenLabsBaseURL: "https://api.elevenlabs.io/v1",
	ElevenLabsTimeout: 30 * time.Second,
}

var ModelConfig = struct {
	DefaultGeminiModel string
	SearchGeminiModel  string
	DefaultOpenAIModel string
	VisionOpenAIModel  string
}{
	DefaultGeminiModel: "gemini-2.5-flash",
	SearchGeminiModel:  "gemini-2.5-flash",
	DefaultOpenAIModel: "gpt-4o-mini",
	VisionOpenAIModel:  "gpt-4o-mini",
}

var TTSConfig = struct {
	DefaultVoiceID  string
	ModelID         string
	Stability       float64
	SimilarityBoost float64
	MaxRetries      int
	RetryDelay      time.Duration
}{
	DefaultVoiceID:  "21m00tcm4tlvdq8ikwam",
	ModelID:         "eleven_tts",
	Stability:       0.65,
	SimilarityBoost: 0.7,
	MaxRetries:      2,
	RetryDelay:      750 * time.Millisecond,
}

var RoastConfig = struct {
	BioPreviewMax     int
	BioPreviewCut     int
	MaxRoastTokens    int
	MaxCritiqueTokens int
	Closer            string
}{
	BioPreviewMax:     120,
	BioPreviewCut:     117,
	MaxRoastTokens:    400,
	MaxCritiqueTokens: 180,
	Closer:            "Share this if you're not a coward.",
}
