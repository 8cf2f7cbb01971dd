package xapi

import (
	"time"

	"github.com/kapu/roastmaster-go/internal/domain"
)

type apiErrorDetail struct {
	Detail string `json:"detail"`
	Title  string `json:"title"`
}

type userResponse struct {
	Data *struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		Username        string `json:"username"`
		Verified        bool   `json:"verified"`
		Description     string `json:"description"`
		ProfileImageURL string `json:"profile_image_url"`
		Location        string `json:"location"`
		PublicMetrics   *struct {
			FollowersCount int `json:"followers_count"`
			FollowingCount int `json:"following_count"`
			TweetCount     int `json:"tweet_count"`
			ListedCount    int `json:"listed_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Errors []apiErrorDetail `json:"errors"`
}

type tweetResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics *struct {
			LikeCount    int `json:"like_count"`
			ReplyCount   int `json:"reply_count"`
			RetweetCount int `json:"retweet_count"`
			QuoteCount   int `json:"quote_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Errors []apiErrorDetail `json:"errors"`
}

func (r *userResponse) toProfileRecord() domain.ProfileRecord {
	user := r.Data

	record := domain.ProfileRecord{
		ID:           user.ID,
		DisplayName:  user.Name,
		Username:     user.Username,
		Verified:     user.Verified,
		Bio:          user.Description,
		Location:     user.Location,
		AvatarURL:    NormalizeAvatarURL(user.ProfileImageURL),
		OriginSource: domain.SourcePrimary,
	}

	if m := user.PublicMetrics; m != nil {
		record.Followers = m.FollowersCount
		record.Following = m.FollowingCount
		record.PostCount = m.TweetCount
		record.ListedCount = m.ListedCount
	}

	record.FollowerRatio = domain.ComputeFollowerRatio(record.Followers, record.Following)
	return record
}

func (r *tweetResponse) toPostSample() *domain.PostSample {
	if len(r.Data) == 0 {
		return nil
	}

	tweet := r.Data[0]
	sample := &domain.PostSample{
		ID:        tweet.ID,
		Text:      tweet.Text,
		CreatedAt: tweet.CreatedAt,
	}

	if m := tweet.PublicMetrics; m != nil {
		sample.LikeCount = m.LikeCount
		sample.ReplyCount = m.ReplyCount
		sample.RepostCount = m.RetweetCount
		sample.QuoteCount = m.QuoteCount
	}

	return sample
}
