package models

import "time"

// Like marks that a user liked a tweet. One per (tweet, user) pair.
type Like struct {
	ID        string    `json:"id"`
	TweetID   string    `json:"tweetId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
