package repository

import (
	"github.com/SidS12345/Family-Connections/internal/model"

	"gorm.io/gorm"
)

type relationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository creates the gorm-backed RelationshipRepository.
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) FindByID(id uint) (*model.Relationship, error) {
	var rel model.Relationship
	if err := r.db.First(&rel, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find relationship id=%d", id)
	}
	return &rel, nil
}

func (r *relationshipRepository) Create(rel *model.Relationship) error {
	if err := r.db.Create(rel).Error; err != nil {
		return wrapDBError(err, "create relationship")
	}
	return nil
}

func (r *relationshipRepository) ResolvePending(rel *model.Relationship) (bool, error) {
	result := r.db.Model(&model.Relationship{}).
		Where("id = ? AND status = ?", rel.ID, model.StatusPending).
		Updates(map[string]any{
			"status":                    rel.Status,
			"reverse_relationship_type": rel.ReverseRelationshipType,
			"is_bidirectional":          rel.IsBidirectional,
		})
	if result.Error != nil {
		return false, wrapDBErrorf(result.Error, "resolve relationship id=%d", rel.ID)
	}
	return result.RowsAffected > 0, nil
}

func (r *relationshipRepository) UpdateLabel(id uint, field model.EditField, value string) error {
	if err := r.db.Model(&model.Relationship{}).Where("id = ?", id).
		Update(string(field), value).Error; err != nil {
		return wrapDBErrorf(err, "update %s of relationship id=%d", field, id)
	}
	return nil
}

func (r *relationshipRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&model.Relationship{}, id).Error; err != nil {
		return wrapDBErrorf(err, "delete relationship id=%d", id)
	}
	return nil
}

func (r *relationshipRepository) FindPendingTo(userID uint) ([]model.Relationship, error) {
	var rels []model.Relationship
	if err := r.db.Where("to_user_id = ? AND status = ?", userID, model.StatusPending).
		Order("id ASC").Find(&rels).Error; err != nil {
		return nil, wrapDBErrorf(err, "find incoming requests user=%d", userID)
	}
	return rels, nil
}

func (r *relationshipRepository) FindPendingFrom(userID uint) ([]model.Relationship, error) {
	var rels []model.Relationship
	if err := r.db.Where("from_user_id = ? AND status = ?", userID, model.StatusPending).
		Order("id ASC").Find(&rels).Error; err != nil {
		return nil, wrapDBErrorf(err, "find outgoing requests user=%d", userID)
	}
	return rels, nil
}

func (r *relationshipRepository) FindConnections(userID uint) ([]model.Relationship, error) {
	var rels []model.Relationship
	if err := r.db.Where("(from_user_id = ? OR to_user_id = ?) AND status = ? AND is_bidirectional = ?",
		userID, userID, model.StatusApproved, true).Order("id ASC").Find(&rels).Error; err != nil {
		return nil, wrapDBErrorf(err, "find connections user=%d", userID)
	}
	return rels, nil
}

func (r *relationshipRepository) FindOutgoing(userID uint) ([]model.Relationship, error) {
	var rels []model.Relationship
	if err := r.db.Where("from_user_id = ?", userID).Order("id ASC").Find(&rels).Error; err != nil {
		return nil, wrapDBErrorf(err, "find outgoing edges user=%d", userID)
	}
	return rels, nil
}

func (r *relationshipRepository) ExistsConnection(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Relationship{}).
		Where("((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)) AND status = ? AND is_bidirectional = ?",
			a, b, b, a, model.StatusApproved, true).
		Count(&count).Error
	if err != nil {
		return false, wrapDBErrorf(err, "check connection %d<->%d", a, b)
	}
	return count > 0, nil
}

func (r *relationshipRepository) DeleteByUser(userID uint) error {
	if err := r.db.Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Delete(&model.Relationship{}).Error; err != nil {
		return wrapDBErrorf(err, "delete relationships of user=%d", userID)
	}
	return nil
}
