package models

import "time"

// Hashtag is a tag extracted from tweet messages, stored once per name.
type Hashtag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrendingHashtag is a hashtag with its tweet count over the trending
// window, as recomputed by the background updater.
type TrendingHashtag struct {
	Name       string    `json:"name"`
	TweetCount int       `json:"tweetCount"`
	ComputedAt time.Time `json:"computedAt"`
}
