package domain

type Notification struct {
	ID          int32             `json:"id"`
	EventID     string            `json:"event_id"`
	UserID      int32             `json:"user_id"`
	CommunityID int32             `json:"community_id"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	IsRead      bool              `json:"is_read"`
	Attributes  map[string]string `json:"attributes"`
	CreatedOn   string            `json:"created_on"`
}
