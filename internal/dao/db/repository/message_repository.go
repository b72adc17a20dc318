package repository

import (
	"github.com/SidS12345/Family-Connections/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates the gorm-backed MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

// FindThread orders by created_at then id so equal timestamps keep insertion order.
func (r *messageRepository) FindThread(a, b uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		a, b, b, a).Order("created_at ASC").Order("id ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find thread %d<->%d", a, b)
	}
	return messages, nil
}

func (r *messageRepository) FindByParticipant(userID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").Order("id DESC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find messages of user=%d", userID)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(senderID, recipientID uint) (int64, error) {
	res := r.db.Model(&model.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", senderID, recipientID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "mark read %d->%d", senderID, recipientID)
	}
	return res.RowsAffected, nil
}

func (r *messageRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count unread user=%d", userID)
	}
	return count, nil
}

func (r *messageRepository) CountUnreadBySender(userID uint) (map[uint]int64, error) {
	var rows []struct {
		SenderID uint
		Total    int64
	}
	if err := r.db.Model(&model.Message{}).
		Select("sender_id, COUNT(*) AS total").
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Group("sender_id").
		Scan(&rows).Error; err != nil {
		return nil, wrapDBErrorf(err, "count unread by sender user=%d", userID)
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.SenderID] = row.Total
	}
	return counts, nil
}
