package services

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/juliencrn/twitter-clone/internal/models"
	ws "github.com/juliencrn/twitter-clone/internal/websocket"
	"github.com/rs/zerolog/log"
)

// ErrTweetNotFound is returned when no tweet matches a lookup.
var ErrTweetNotFound = errors.New("tweet not found")

// TweetServiceProvider defines the interface for tweet services.
type TweetServiceProvider interface {
	GetAll(limit int) ([]models.Tweet, error)
	Get(id string) (models.Tweet, error)
	Create(authorID, message, asset string) (models.Tweet, error)
	Update(id, message, asset string) (models.Tweet, error)
	Delete(id string) error
}

// TweetService provides business logic for tweets. New and deleted
// tweets are pushed to the live feed hub.
type TweetService struct {
	db         *sql.DB
	hashtagSvc HashtagServiceProvider
	hub        *ws.Hub
}

// NewTweetService creates a new TweetService.
func NewTweetService(db *sql.DB, hashtagSvc HashtagServiceProvider, hub *ws.Hub) *TweetService {
	return &TweetService{db: db, hashtagSvc: hashtagSvc, hub: hub}
}

const tweetColumns = "id, author_id, message, likes, retweets, comments, asset, created_at"

// GetAll retrieves the most recent tweets, newest first.
func (s *TweetService) GetAll(limit int) ([]models.Tweet, error) {
	rows, err := s.db.Query("SELECT "+tweetColumns+" FROM tweets ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []models.Tweet
	for rows.Next() {
		var t models.Tweet
		if err := rows.Scan(&t.ID, &t.AuthorID, &t.Message, &t.Likes, &t.Retweets, &t.Comments, &t.Asset, &t.CreatedAt); err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	return tweets, rows.Err()
}

// Get retrieves a single tweet by ID.
func (s *TweetService) Get(id string) (models.Tweet, error) {
	var t models.Tweet
	row := s.db.QueryRow("SELECT "+tweetColumns+" FROM tweets WHERE id = ?", id)
	err := row.Scan(&t.ID, &t.AuthorID, &t.Message, &t.Likes, &t.Retweets, &t.Comments, &t.Asset, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tweet{}, ErrTweetNotFound
		}
		return models.Tweet{}, err
	}
	return t, nil
}

// Create publishes a new tweet for the given author, links its
// hashtags and broadcasts it to the feed.
func (s *TweetService) Create(authorID, message, asset string) (models.Tweet, error) {
	tweet := models.Tweet{
		ID:       uuid.New().String(),
		AuthorID: authorID,
		Message:  message,
		Asset:    asset,
	}

	stmt, err := s.db.Prepare("INSERT INTO tweets(id, author_id, message, asset) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.Tweet{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(tweet.ID, tweet.AuthorID, tweet.Message, tweet.Asset); err != nil {
		return models.Tweet{}, err
	}

	// Re-read so the response carries the DB-assigned timestamp.
	tweet, err = s.Get(tweet.ID)
	if err != nil {
		return models.Tweet{}, err
	}

	hashtags, err := s.hashtagSvc.LinkMessage(tweet.ID, tweet.Message)
	if err != nil {
		log.Error().Err(err).Str("tweet_id", tweet.ID).Msg("Failed to link hashtags")
	}

	s.broadcast(ws.ActionTweetCreated, tweet, hashtags)
	return tweet, nil
}

// Update edits a tweet's message and asset.
func (s *TweetService) Update(id, message, asset string) (models.Tweet, error) {
	res, err := s.db.Exec("UPDATE tweets SET message = ?, asset = ? WHERE id = ?", message, asset, id)
	if err != nil {
		return models.Tweet{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Tweet{}, err
	}
	if affected == 0 {
		return models.Tweet{}, ErrTweetNotFound
	}
	return s.Get(id)
}

// Delete removes a tweet and notifies the feed. Likes and hashtag
// relations go with it via ON DELETE CASCADE.
func (s *TweetService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM tweets WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTweetNotFound
	}

	s.broadcast(ws.ActionTweetDeleted, map[string]string{"id": id}, nil)
	return nil
}

// broadcast pushes a feed event globally and to hashtag followers.
func (s *TweetService) broadcast(action string, payload interface{}, hashtags []string) {
	if s.hub == nil {
		return
	}

	data, err := json.Marshal(ws.Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode feed event")
		return
	}

	s.hub.Broadcast <- data
	for _, hashtag := range hashtags {
		s.hub.BroadcastTo(hashtag, data)
	}
}
