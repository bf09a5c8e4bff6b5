package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/juliencrn/twitter-clone/internal/database"
	"github.com/juliencrn/twitter-clone/internal/models"
)

// LikeServiceProvider defines the interface for like services.
type LikeServiceProvider interface {
	GetForTweet(tweetID string, limit int) ([]models.Like, error)
	Create(tweetID, userID string) (models.Like, error)
	Delete(tweetID, userID string) error
}

// LikeService provides business logic for tweet likes and keeps the
// denormalized like counter on tweets in sync.
type LikeService struct {
	db       *sql.DB
	tweetSvc TweetServiceProvider
}

// NewLikeService creates a new LikeService.
func NewLikeService(db *sql.DB, tweetSvc TweetServiceProvider) *LikeService {
	return &LikeService{db: db, tweetSvc: tweetSvc}
}

// GetForTweet retrieves the most recent likes of a tweet.
func (s *LikeService) GetForTweet(tweetID string, limit int) ([]models.Like, error) {
	rows, err := s.db.Query(
		"SELECT id, tweet_id, user_id, created_at FROM likes WHERE tweet_id = ? ORDER BY created_at DESC LIMIT ?",
		tweetID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []models.Like
	for rows.Next() {
		var like models.Like
		if err := rows.Scan(&like.ID, &like.TweetID, &like.UserID, &like.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}

// Create records that userID liked tweetID. The tweet must exist, and
// a user can like a tweet only once.
func (s *LikeService) Create(tweetID, userID string) (models.Like, error) {
	if _, err := s.tweetSvc.Get(tweetID); err != nil {
		return models.Like{}, err
	}

	like := models.Like{
		ID:      uuid.New().String(),
		TweetID: tweetID,
		UserID:  userID,
	}

	_, err := s.db.Exec(
		"INSERT INTO likes (id, tweet_id, user_id) VALUES (?, ?, ?)",
		like.ID, like.TweetID, like.UserID,
	)
	if database.IsUniqueViolation(err) {
		return models.Like{}, apierror.Conflict("tweet already liked")
	}
	if err != nil {
		return models.Like{}, err
	}

	if _, err := s.db.Exec("UPDATE tweets SET likes = likes + 1 WHERE id = ?", tweetID); err != nil {
		return models.Like{}, err
	}

	return like, nil
}

// Delete removes userID's like of tweetID, if any.
func (s *LikeService) Delete(tweetID, userID string) error {
	res, err := s.db.Exec("DELETE FROM likes WHERE tweet_id = ? AND user_id = ?", tweetID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierror.NotFound("Like not found")
	}

	_, err = s.db.Exec("UPDATE tweets SET likes = likes - 1 WHERE id = ? AND likes > 0", tweetID)
	return err
}
