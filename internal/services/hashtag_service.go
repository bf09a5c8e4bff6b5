package services

import (
	"database/sql"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juliencrn/twitter-clone/internal/database"
	"github.com/juliencrn/twitter-clone/internal/models"
)

var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// ExtractHashtags returns the lowercased, deduplicated hashtag names
// found in a tweet message, without the leading '#'.
func ExtractHashtags(message string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(message, -1)
	seen := make(map[string]bool)
	var names []string
	for _, match := range matches {
		name := strings.ToLower(match[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// HashtagServiceProvider defines the interface for hashtag services.
type HashtagServiceProvider interface {
	LinkMessage(tweetID, message string) ([]string, error)
	GetRecent(limit int) ([]models.Hashtag, error)
	GetTrending(limit int) ([]models.TrendingHashtag, error)
	RecomputeTrending(window time.Duration) (int, error)
}

// HashtagService manages hashtags, their tweet relations and the
// precomputed trending table.
type HashtagService struct {
	db *sql.DB
}

// NewHashtagService creates a new HashtagService.
func NewHashtagService(db *sql.DB) *HashtagService {
	return &HashtagService{db: db}
}

// LinkMessage extracts the hashtags from a tweet message, creates any
// that do not exist yet and records the tweet relation. It returns the
// extracted names.
func (s *HashtagService) LinkMessage(tweetID, message string) ([]string, error) {
	names := ExtractHashtags(message)

	for _, name := range names {
		id, err := s.upsert(name)
		if err != nil {
			return nil, err
		}

		_, err = s.db.Exec(
			"INSERT INTO tweet_hashtags (id, tweet_id, hashtag_id) VALUES (?, ?, ?)",
			uuid.New().String(), tweetID, id,
		)
		if err != nil && !database.IsUniqueViolation(err) {
			return nil, err
		}
	}
	return names, nil
}

// upsert returns the ID of the hashtag with the given name, creating it
// when missing. Concurrent creates of the same name are resolved by the
// UNIQUE constraint followed by a re-read.
func (s *HashtagService) upsert(name string) (string, error) {
	var id string
	err := s.db.QueryRow("SELECT id FROM hashtags WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	id = uuid.New().String()
	_, err = s.db.Exec("INSERT INTO hashtags (id, name) VALUES (?, ?)", id, name)
	if database.IsUniqueViolation(err) {
		err = s.db.QueryRow("SELECT id FROM hashtags WHERE name = ?", name).Scan(&id)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetRecent retrieves the most recently created hashtags.
func (s *HashtagService) GetRecent(limit int) ([]models.Hashtag, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM hashtags ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashtags []models.Hashtag
	for rows.Next() {
		var h models.Hashtag
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		hashtags = append(hashtags, h)
	}
	return hashtags, rows.Err()
}

// GetTrending retrieves the precomputed trending hashtags, most used
// first.
func (s *HashtagService) GetTrending(limit int) ([]models.TrendingHashtag, error) {
	rows, err := s.db.Query("SELECT name, tweet_count, computed_at FROM trending ORDER BY tweet_count DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trending []models.TrendingHashtag
	for rows.Next() {
		var t models.TrendingHashtag
		if err := rows.Scan(&t.Name, &t.TweetCount, &t.ComputedAt); err != nil {
			return nil, err
		}
		trending = append(trending, t)
	}
	return trending, rows.Err()
}

// RecomputeTrending rebuilds the trending table from tweets created
// inside the sliding window. Returns the number of trending entries.
func (s *HashtagService) RecomputeTrending(window time.Duration) (int, error) {
	cutoff := time.Now().Add(-window)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM trending"); err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO trending (name, tweet_count, computed_at)
		SELECT h.name, COUNT(th.tweet_id), ?
		FROM hashtags h
		JOIN tweet_hashtags th ON th.hashtag_id = h.id
		JOIN tweets t ON t.id = th.tweet_id
		WHERE t.created_at >= ?
		GROUP BY h.name`,
		time.Now(), cutoff,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	count, err := res.RowsAffected()
	return int(count), err
}
