package postgres

import (
	"context"
	"errors"

	"expensetracker/internal/category"
	categoryDatamodel "expensetracker/internal/core/datamodel/category"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetVisible(ctx context.Context, userID int64) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.WithContext(ctx).
		Where("is_default = ? OR user_id = ?", true, userID).
		Order("is_default DESC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByNameAndUser(ctx context.Context, name string, userID int64) (*categoryDatamodel.Category, error) {
	var c categoryDatamodel.Category
	err := r.db.WithContext(ctx).
		Where("name = ? AND user_id = ?", name, userID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error) {
	var c categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}
