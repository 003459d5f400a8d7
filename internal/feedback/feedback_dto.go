package feedback

import "time"

type CreateFeedbackRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required,uuid"`
	Content    string `json:"content" binding:"required,min=3,max=4000"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=PRIVATE PUBLIC"`
}

type FeedbackResponse struct {
	ID         string    `json:"id"`
	GiverID    string    `json:"giver_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Polished   *string   `json:"polished,omitempty"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
}
