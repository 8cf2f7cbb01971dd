package prompt

// SearchPromptVars holds variables for the profile search prompt.
type SearchPromptVars struct {
	Handle string
}

// ExtractionPromptVars holds variables for the profile extraction prompt.
type ExtractionPromptVars struct {
	Handle     string
	SearchText string
}

// RoastPromptVars holds variables for the roast generation prompt.
type RoastPromptVars struct {
	Handle         string
	DisplayName    string
	Verified       bool
	Bio            string
	Location       string
	Followers      int
	Following      int
	PostCount      int
	FollowerRatio  float64
	AvgEngagement  int
	HoursSincePost *int
	LastPostText   string
	MetricsSparse  bool
	Closer         string
}

// CritiquePromptVars holds variables for the avatar critique prompt.
type CritiquePromptVars struct {
	Handle string
}
