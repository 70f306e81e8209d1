package events

// Stream and field names shared with downstream consumers
const (
	StreamBlogEvents = "blog:events"
)

// NotificationCreated is published after the fan-out task writes a
// notification, for consumers outside this process (live delivery bridges,
// analytics). The API itself never reads the stream back.
type NotificationCreated struct {
	NotificationID string   `json:"notification_id"`
	PostID         uint     `json:"post_id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Recipients     []string `json:"recipients"`
}
