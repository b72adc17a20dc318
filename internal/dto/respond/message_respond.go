package respond

// MessageRespond is one message in a thread.
type MessageRespond struct {
	ID          uint   `json:"id"`
	Uuid        string `json:"uuid"` // string to survive JavaScript number precision
	SenderID    uint   `json:"sender_id"`
	RecipientID uint   `json:"recipient_id"`
	Content     string `json:"content"`
	Timestamp   string `json:"timestamp"`
	IsRead      bool   `json:"is_read"`
	IsMine      bool   `json:"is_mine"`
}

// ConversationRespond summarises the exchange with one partner.
type ConversationRespond struct {
	Partner       PublicUserRespond `json:"partner"`
	LatestMessage MessageRespond    `json:"latest_message"`
	UnreadCount   int64             `json:"unread_count"`
}

// UnreadCountRespond is the caller's total unread count.
type UnreadCountRespond struct {
	Unread int64 `json:"unread"`
}
