package request

// SendMessageRequest sends a direct message from the caller.
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"max=5000"`
}
