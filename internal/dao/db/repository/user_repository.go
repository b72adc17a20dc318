package repository

import (
	"errors"

	"github.com/SidS12345/Family-Connections/internal/model"
	"github.com/SidS12345/Family-Connections/pkg/errorx"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the gorm-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id uint) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user id=%d", id)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user email=%s", email)
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ids []uint) ([]model.UserInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.UserInfo
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "find users by ids")
	}
	return users, nil
}

func (r *userRepository) FindAllExcept(excludeID uint) ([]model.UserInfo, error) {
	var users []model.UserInfo
	if err := r.db.Where("id <> ?", excludeID).Order("id ASC").Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "list users")
	}
	return users, nil
}

// Create inserts user. A taken email returns CodeUserExist; the unique index
// is the authority, not any earlier lookup.
func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorx.Wrap(err, errorx.CodeUserExist, "email is already registered")
		}
		return wrapDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) Update(user *model.UserInfo) error {
	if err := r.db.Save(user).Error; err != nil {
		return wrapDBErrorf(err, "update user id=%d", user.ID)
	}
	return nil
}

func (r *userRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&model.UserInfo{}, id).Error; err != nil {
		return wrapDBErrorf(err, "delete user id=%d", id)
	}
	return nil
}
