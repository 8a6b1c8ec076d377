package models

// Activity is the event published to the broker when content is created.
type Activity struct {
	ActivityID string `json:"activity_id"` // Unique event id
	Timestamp  int64  `json:"timestamp"`   // Unix timestamp
	Operation  string `json:"operation"`   // "photo_uploaded" or "comment_added"
	UserID     string `json:"user_id"`     // Acting user
	PhotoID    string `json:"photo_id"`    // Affected photo
}
