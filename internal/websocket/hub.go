package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active feed clients and broadcasts tweet
// events to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast to the whole feed.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of hashtag names to the set of clients following them.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Feed client connected")
			// If the client connected with a hashtag filter, follow it.
			if client.Hashtag != "" {
				h.addSubscription(client, client.Hashtag)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		}
	}
}

// BroadcastTo sends a message to all clients following a hashtag.
func (h *Hub) BroadcastTo(hashtag string, message []byte) {
	if subs, ok := h.subscriptions[hashtag]; ok {
		for client := range subs {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(h.subscriptions[hashtag], client)
			}
		}
	}
}

func (h *Hub) addSubscription(client *Client, hashtag string) {
	if h.subscriptions[hashtag] == nil {
		h.subscriptions[hashtag] = make(map[*Client]bool)
	}
	h.subscriptions[hashtag][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for hashtag, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, hashtag)
			}
		}
	}
}
