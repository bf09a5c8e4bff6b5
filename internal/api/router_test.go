package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/juliencrn/twitter-clone/internal/apierror"
	"github.com/juliencrn/twitter-clone/internal/auth"
	"github.com/juliencrn/twitter-clone/internal/models"
	"github.com/juliencrn/twitter-clone/internal/services"
	"github.com/juliencrn/twitter-clone/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore implements CredentialStore and UserServiceProvider in
// memory, mirroring the unique-field behavior of the SQL store.
type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) FindByID(id string) (models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return models.User{}, services.ErrUserNotFound
}

func (f *fakeUserStore) FindByEmail(email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, services.ErrUserNotFound
}

func (f *fakeUserStore) FindByHandle(handle string) (models.User, error) {
	for _, user := range f.users {
		if user.Handle == handle {
			return user, nil
		}
	}
	return models.User{}, services.ErrUserNotFound
}

func (f *fakeUserStore) Create(user models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return &services.ErrDuplicateUser{Field: "email"}
		}
		if existing.Handle == user.Handle {
			return &services.ErrDuplicateUser{Field: "handle"}
		}
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Update(id, name, handle string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, services.ErrUserNotFound
	}
	user.Name = name
	user.Handle = handle
	f.users[id] = user
	return user, nil
}

func (f *fakeUserStore) Delete(id string) error {
	if _, ok := f.users[id]; !ok {
		return services.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) GetAll() ([]models.User, error) {
	var users []models.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

// fakeTweetService implements TweetServiceProvider in memory.
type fakeTweetService struct {
	tweets map[string]models.Tweet
}

func newFakeTweetService() *fakeTweetService {
	return &fakeTweetService{tweets: make(map[string]models.Tweet)}
}

func (f *fakeTweetService) GetAll(limit int) ([]models.Tweet, error) {
	var tweets []models.Tweet
	for _, tweet := range f.tweets {
		tweets = append(tweets, tweet)
	}
	return tweets, nil
}

func (f *fakeTweetService) Get(id string) (models.Tweet, error) {
	if tweet, ok := f.tweets[id]; ok {
		return tweet, nil
	}
	return models.Tweet{}, services.ErrTweetNotFound
}

func (f *fakeTweetService) Create(authorID, message, asset string) (models.Tweet, error) {
	tweet := models.Tweet{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Message:   message,
		Asset:     asset,
		CreatedAt: time.Now(),
	}
	f.tweets[tweet.ID] = tweet
	return tweet, nil
}

func (f *fakeTweetService) Update(id, message, asset string) (models.Tweet, error) {
	tweet, ok := f.tweets[id]
	if !ok {
		return models.Tweet{}, services.ErrTweetNotFound
	}
	tweet.Message = message
	tweet.Asset = asset
	f.tweets[id] = tweet
	return tweet, nil
}

func (f *fakeTweetService) Delete(id string) error {
	if _, ok := f.tweets[id]; !ok {
		return services.ErrTweetNotFound
	}
	delete(f.tweets, id)
	return nil
}

// fakeLikeService implements LikeServiceProvider in memory.
type fakeLikeService struct {
	tweetSvc services.TweetServiceProvider
	likes    map[string]models.Like // keyed by tweetID+userID
}

func newFakeLikeService(tweetSvc services.TweetServiceProvider) *fakeLikeService {
	return &fakeLikeService{tweetSvc: tweetSvc, likes: make(map[string]models.Like)}
}

func (f *fakeLikeService) GetForTweet(tweetID string, limit int) ([]models.Like, error) {
	var likes []models.Like
	for _, like := range f.likes {
		if like.TweetID == tweetID {
			likes = append(likes, like)
		}
	}
	return likes, nil
}

func (f *fakeLikeService) Create(tweetID, userID string) (models.Like, error) {
	if _, err := f.tweetSvc.Get(tweetID); err != nil {
		return models.Like{}, err
	}
	key := tweetID + "/" + userID
	if _, ok := f.likes[key]; ok {
		return models.Like{}, apierror.Conflict("tweet already liked")
	}
	like := models.Like{ID: uuid.New().String(), TweetID: tweetID, UserID: userID, CreatedAt: time.Now()}
	f.likes[key] = like
	return like, nil
}

func (f *fakeLikeService) Delete(tweetID, userID string) error {
	key := tweetID + "/" + userID
	if _, ok := f.likes[key]; !ok {
		return apierror.NotFound("Like not found")
	}
	delete(f.likes, key)
	return nil
}

// fakeHashtagService implements HashtagServiceProvider with canned data.
type fakeHashtagService struct{}

func (fakeHashtagService) LinkMessage(tweetID, message string) ([]string, error) { return nil, nil }
func (fakeHashtagService) GetRecent(limit int) ([]models.Hashtag, error)        { return nil, nil }
func (fakeHashtagService) GetTrending(limit int) ([]models.TrendingHashtag, error) {
	return nil, nil
}
func (fakeHashtagService) RecomputeTrending(window time.Duration) (int, error) { return 0, nil }

type testEnv struct {
	router http.Handler
	store  *fakeUserStore
	tweets *fakeTweetService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)
	store := newFakeUserStore()
	authSvc := services.NewAuthService(store, auth.NewArgon2Hasher(), codec)
	tweets := newFakeTweetService()
	likes := newFakeLikeService(tweets)

	hub := websocket.NewHub()
	go hub.Run()

	router := NewRouter(codec, hub, authSvc, store, tweets, likes, fakeHashtagService{})
	return &testEnv{router: router, store: store, tweets: tweets}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, name, handle, email, password string) models.PublicUser {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "handle": handle, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user models.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	user := env.register(t, "A", "a", "a@x.com", "password1")
	assert.Equal(t, "a", user.Handle)
	assert.NotEmpty(t, user.ID)

	// Registration response must never leak credential material.
	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "B", "handle": "b", "email": "b@x.com", "password": "password1",
	})
	assert.NotContains(t, rec.Body.String(), "password")

	// Same email again → conflict.
	rec = env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "A", "handle": "a2", "email": "a@x.com", "password": "password1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already taken")

	// Correct credentials → token.
	token := env.login(t, "a@x.com", "password1")

	rec = env.do(t, http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.ID)
}

func TestLoginFailureResponsesAreIdentical(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "A", "a", "a@x.com", "password1")

	wrongPassword := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	unknownAccount := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@x.com", "password": "password1",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownAccount.Code)
	assert.Equal(t, wrongPassword.Body.Bytes(), unknownAccount.Body.Bytes(),
		"failure responses must be byte-identical to prevent account enumeration")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"name": "A", "handle": "a", "password": "password1"}},
		{"invalid email", map[string]string{"name": "A", "handle": "a", "email": "nope", "password": "password1"}},
		{"short password", map[string]string{"name": "A", "handle": "a", "email": "a@x.com", "password": "short"}},
		{"missing name", map[string]string{"handle": "a", "email": "a@x.com", "password": "password1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/auth/register", "", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	// No Authorization header at all.
	rec := env.do(t, http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage bearer token.
	rec = env.do(t, http.MethodGet, "/api/v1/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Expired token.
	expiredCodec := auth.NewTokenCodec([]byte("test-secret"), -time.Minute)
	expired, err := expiredCodec.Issue("someone")
	require.NoError(t, err)
	rec = env.do(t, http.MethodGet, "/api/v1/profile", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with a different secret.
	foreignCodec := auth.NewTokenCodec([]byte("other-secret"), time.Hour)
	foreign, err := foreignCodec.Issue("someone")
	require.NoError(t, err)
	rec = env.do(t, http.MethodGet, "/api/v1/profile", foreign, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTweetOwnership(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "A", "a", "a@x.com", "password1")
	env.register(t, "B", "b", "b@x.com", "password1")
	tokenA := env.login(t, "a@x.com", "password1")
	tokenB := env.login(t, "b@x.com", "password1")

	// A publishes a tweet.
	rec := env.do(t, http.MethodPost, "/api/v1/tweets", tokenA, map[string]string{
		"message": "hello #world",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tweet models.Tweet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tweet))

	// B cannot delete A's tweet.
	rec = env.do(t, http.MethodDelete, "/api/v1/tweets/"+tweet.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Deleting a missing tweet reads as 404, not 403.
	rec = env.do(t, http.MethodDelete, "/api/v1/tweets/"+uuid.New().String(), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Unauthenticated delete never reaches the handler.
	rec = env.do(t, http.MethodDelete, "/api/v1/tweets/"+tweet.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The owner can delete.
	rec = env.do(t, http.MethodDelete, "/api/v1/tweets/"+tweet.ID, tokenA, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUserOwnership(t *testing.T) {
	env := newTestEnv(t)

	userA := env.register(t, "A", "a", "a@x.com", "password1")
	env.register(t, "B", "b", "b@x.com", "password1")
	tokenB := env.login(t, "b@x.com", "password1")

	rec := env.do(t, http.MethodDelete, "/api/v1/users/"+userA.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/users/"+userA.ID, tokenB, map[string]string{
		"name": "Mallory", "handle": "a",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	tokenA := env.login(t, "a@x.com", "password1")
	rec = env.do(t, http.MethodDelete, "/api/v1/users/"+userA.ID, tokenA, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The token outlives the account: it still passes the gate, but the
	// profile it points at is gone.
	rec = env.do(t, http.MethodGet, "/api/v1/profile", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeFlow(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "A", "a", "a@x.com", "password1")
	token := env.login(t, "a@x.com", "password1")

	rec := env.do(t, http.MethodPost, "/api/v1/tweets", token, map[string]string{"message": "likeable"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var tweet models.Tweet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tweet))

	likesPath := fmt.Sprintf("/api/v1/tweets/%s/likes", tweet.ID)

	rec = env.do(t, http.MethodPost, likesPath, token, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Liking twice conflicts.
	rec = env.do(t, http.MethodPost, likesPath, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, likesPath, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, likesPath, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Liking a missing tweet is a 404.
	rec = env.do(t, http.MethodPost, "/api/v1/tweets/"+uuid.New().String()+"/likes", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
