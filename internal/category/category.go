package category

import (
	"time"

	categoryDatamodel "expensetracker/internal/core/datamodel/category"
)

// Category is either a system default shared by every user or owned by
// exactly one user. A user sees the union of the defaults and their own.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"is_default"`
	UserID    *int64    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) VisibleTo(userID int64) bool {
	return c.IsDefault || (c.UserID != nil && *c.UserID == userID)
}

func NewCategory(name, icon string, userID int64) *Category {
	return &Category{
		Name:      name,
		Icon:      icon,
		UserID:    &userID,
		CreatedAt: time.Now(),
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		IsDefault: c.IsDefault,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		IsDefault: c.IsDefault,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
	}
}

func FromDataModelSlice(categories []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(categories))
	for i, c := range categories {
		result[i] = FromDataModel(c)
	}
	return result
}
