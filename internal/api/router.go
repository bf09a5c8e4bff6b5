package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/juliencrn/twitter-clone/internal/api/handlers"
	"github.com/juliencrn/twitter-clone/internal/auth"
	"github.com/juliencrn/twitter-clone/internal/services"
	"github.com/juliencrn/twitter-clone/internal/websocket"
)

// NewRouter creates and configures a new Chi router. Protected routes
// are gated by the token middleware; mutating routes additionally
// enforce ownership inside their handlers.
func NewRouter(
	codec *auth.TokenCodec,
	hub *websocket.Hub,
	authService services.AuthServiceProvider,
	userService services.UserServiceProvider,
	tweetService services.TweetServiceProvider,
	likeService services.LikeServiceProvider,
	hashtagService services.HashtagServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	tweetHandler := handlers.NewTweetHandler(tweetService)
	likeHandler := handlers.NewLikeHandler(likeService)
	hashtagHandler := handlers.NewHashtagHandler(hashtagService)
	feedHandler := handlers.NewFeedHandler(hub)

	requireAuth := auth.Middleware(codec)

	// Credential endpoints live outside the versioned API
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Live tweet feed
		r.Get("/ws", feedHandler.Serve)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.GetAll)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.With(requireAuth).Put("/", userHandler.Update)
				r.With(requireAuth).Delete("/", userHandler.Delete)
			})
		})

		r.With(requireAuth).Get("/profile", userHandler.GetMe)

		r.Route("/tweets", func(r chi.Router) {
			r.Get("/", tweetHandler.GetAll)
			r.With(requireAuth).Post("/", tweetHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", tweetHandler.Get)
				r.With(requireAuth).Put("/", tweetHandler.Update)
				r.With(requireAuth).Delete("/", tweetHandler.Delete)

				r.Route("/likes", func(r chi.Router) {
					r.Get("/", likeHandler.GetForTweet)
					r.With(requireAuth).Post("/", likeHandler.Create)
					r.With(requireAuth).Delete("/", likeHandler.Delete)
				})
			})
		})

		r.Route("/hashtags", func(r chi.Router) {
			r.Get("/", hashtagHandler.GetRecent)
			r.Get("/trending", hashtagHandler.GetTrending)
		})
	})

	return r
}
