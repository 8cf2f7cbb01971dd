package domain

import (
	"math"
	"time"
)

// ProfileRecord is the normalized profile shape shared by every source.
// Numeric fields default to 0 when a source cannot supply them.
type ProfileRecord struct {
	ID            string  `json:"id"`
	DisplayName   string  `json:"display_name"`
	Username      string  `json:"username"`
	Verified      bool    `json:"verified"`
	Bio           string  `json:"bio,omitempty"`
	Location      string  `json:"location,omitempty"`
	AvatarURL     string  `json:"avatar_url,omitempty"`
	Followers     int     `json:"followers"`
	Following     int     `json:"following"`
	PostCount     int     `json:"post_count"`
	ListedCount   int     `json:"listed_count"`
	FollowerRatio float64 `json:"follower_ratio"`
	OriginSource  Source  `json:"origin_source"`
}

// ComputeFollowerRatio returns followers / max(1, following) rounded to two
// decimals, and 0 when both counts are zero.
func ComputeFollowerRatio(followers, following int) float64 {
	if followers == 0 && following == 0 {
		return 0
	}
	divisor := following
	if divisor < 1 {
		divisor = 1
	}
	ratio := float64(followers) / float64(divisor)
	return math.Round(ratio*100) / 100
}

// PostSample is the single most-recent post, only obtainable from the
// primary source.
type PostSample struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	LikeCount   int       `json:"like_count"`
	ReplyCount  int       `json:"reply_count"`
	RepostCount int       `json:"repost_count"`
	QuoteCount  int       `json:"quote_count"`
}

// Engagement sums all interaction counts on the post.
func (p *PostSample) Engagement() int {
	return p.LikeCount + p.ReplyCount + p.RepostCount + p.QuoteCount
}
