package handlers

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	ws "github.com/juliencrn/twitter-clone/internal/websocket"
	"github.com/rs/zerolog/log"
)

// FeedHandler upgrades HTTP connections to the live tweet feed.
type FeedHandler struct {
	hub *ws.Hub
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(hub *ws.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request. An optional
// "?hashtag=name" query parameter additionally follows one hashtag.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	hashtag := strings.ToLower(strings.TrimPrefix(r.URL.Query().Get("hashtag"), "#"))

	client := ws.NewClient(h.hub, conn, hashtag)
	h.hub.Register <- client

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		client.ReadPump(nil)
	}()

	// Cleanup on disconnect.
	go func() {
		wg.Wait()
		h.hub.Unregister <- client
	}()
}
