package category

import "expensetracker/internal"

// CreateCategoryDTO is the transport shape for category creation. The icon
// falls back to the name when omitted, matching the mobile client contract.
type CreateCategoryDTO struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (d CreateCategoryDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("Please provide a category name", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d CreateCategoryDTO) IconOrDefault() string {
	if d.Icon != "" {
		return d.Icon
	}
	return d.Name
}
