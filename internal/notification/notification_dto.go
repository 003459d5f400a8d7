package notification

import "time"

type NotificationResponse struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type NotificationListMeta struct {
	UnreadCount int64 `json:"unread_count"`
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
}
