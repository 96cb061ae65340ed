package repository

import (
	"errors"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	var user entity.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByResetToken(db *gorm.DB, token string) (*entity.User, error) {
	var user entity.User
	err := db.Where("password_reset_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

var userSortColumns = map[string]string{
	"username":  "username",
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

func (r *userRepository) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.User, int64, error) {
	q := db.Model(&entity.User{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("username ILIKE ? OR name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := q.Order(orderClause(userSortColumns, params, "created_at DESC")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) FindActive(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	err := db.Where("is_active = ?", true).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Save(user).Error
}

func (r *userRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.User{}).Error
}

// orderClause maps a whitelisted sortBy to its column, falling back to the
// repository default. sortOrder defaults to ascending.
func orderClause(columns map[string]string, params *pagination.Params, fallback string) string {
	col, ok := columns[params.SortBy]
	if !ok {
		return fallback
	}
	if params.SortOrder == "desc" {
		return col + " DESC"
	}
	return col + " ASC"
}
