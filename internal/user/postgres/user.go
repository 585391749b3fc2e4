package postgres

import (
	"context"
	"errors"

	userDatamodel "expensetracker/internal/core/datamodel/user"
	"expensetracker/internal/user"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Model(u).
		Select("first_name", "last_name", "phone", "gender", "birth_date").
		Updates(u).Error
}
