package database

import (
	"database/sql"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
// Uniqueness of user email/handle and of one like per user per tweet is
// enforced here; the services rely on these constraints to resolve
// races between concurrent inserts.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		handle TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tweets (
		id TEXT NOT NULL PRIMARY KEY,
		author_id TEXT NOT NULL REFERENCES users(id),
		message TEXT NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0,
		retweets INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		asset TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS likes (
		id TEXT NOT NULL PRIMARY KEY,
		tweet_id TEXT NOT NULL REFERENCES tweets(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (tweet_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS hashtags (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tweet_hashtags (
		id TEXT NOT NULL PRIMARY KEY,
		tweet_id TEXT NOT NULL REFERENCES tweets(id) ON DELETE CASCADE,
		hashtag_id TEXT NOT NULL REFERENCES hashtags(id),
		UNIQUE (tweet_id, hashtag_id)
	);

	CREATE TABLE IF NOT EXISTS trending (
		name TEXT NOT NULL PRIMARY KEY,
		tweet_count INTEGER NOT NULL,
		computed_at DATETIME NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// IsUniqueViolation reports whether err comes from a violated UNIQUE
// constraint, which is how concurrent duplicate inserts surface.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
