package repository

import (
	"github.com/SidS12345/Family-Connections/internal/model"

	"gorm.io/gorm"
)

type editRequestRepository struct {
	db *gorm.DB
}

// NewEditRequestRepository creates the gorm-backed EditRequestRepository.
func NewEditRequestRepository(db *gorm.DB) EditRequestRepository {
	return &editRequestRepository{db: db}
}

func (r *editRequestRepository) FindByID(id uint) (*model.RelationshipEditRequest, error) {
	var req model.RelationshipEditRequest
	if err := r.db.First(&req, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find edit request id=%d", id)
	}
	return &req, nil
}

func (r *editRequestRepository) Create(req *model.RelationshipEditRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return wrapDBError(err, "create edit request")
	}
	return nil
}

func (r *editRequestRepository) ResolvePending(id uint, status model.Status) (bool, error) {
	result := r.db.Model(&model.RelationshipEditRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, wrapDBErrorf(result.Error, "resolve edit request id=%d", id)
	}
	return result.RowsAffected > 0, nil
}

func (r *editRequestRepository) FindPendingByTarget(userID uint) ([]model.RelationshipEditRequest, error) {
	var reqs []model.RelationshipEditRequest
	if err := r.db.Where("target_user_id = ? AND status = ?", userID, model.StatusPending).
		Order("id ASC").Find(&reqs).Error; err != nil {
		return nil, wrapDBErrorf(err, "find pending edit requests user=%d", userID)
	}
	return reqs, nil
}

func (r *editRequestRepository) DeleteByUser(userID uint) error {
	if err := r.db.Where("requesting_user_id = ? OR target_user_id = ?", userID, userID).
		Delete(&model.RelationshipEditRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "delete edit requests of user=%d", userID)
	}
	return nil
}

func (r *editRequestRepository) DeleteByRelationship(relationshipID uint) error {
	if err := r.db.Where("relationship_id = ?", relationshipID).
		Delete(&model.RelationshipEditRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "delete edit requests of relationship=%d", relationshipID)
	}
	return nil
}
