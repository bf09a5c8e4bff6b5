package models

import "time"

// Tweet represents a single published message.
type Tweet struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Message   string    `json:"message"`
	Likes     int       `json:"likes"`
	Retweets  int       `json:"retweets"`
	Comments  int       `json:"comments"`
	Asset     string    `json:"asset,omitempty"` // optional media attachment, JSON blob
	CreatedAt time.Time `json:"createdAt"`
}
