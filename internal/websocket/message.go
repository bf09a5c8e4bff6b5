package websocket

// Feed actions pushed to connected clients.
const (
	ActionTweetCreated = "tweet.created"
	ActionTweetDeleted = "tweet.deleted"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}
