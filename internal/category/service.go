package category

import (
	"context"
	"log/slog"

	"expensetracker/internal"
	categoryDatamodel "expensetracker/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetVisible(ctx context.Context, userID int64) ([]*categoryDatamodel.Category, error)
	GetByNameAndUser(ctx context.Context, name string, userID int64) (*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error)
	Create(ctx context.Context, c *categoryDatamodel.Category) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetCategories returns the defaults plus the caller's own categories.
func (s *Service) GetCategories(ctx context.Context, userID int64) ([]*Category, error) {
	records, err := s.repo.GetVisible(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get categories", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("Internal Server Error", err)
	}
	return FromDataModelSlice(records), nil
}

// CreateCategory rejects a duplicate (name, user) pair. The existence check
// is a fast path; the partial unique index on (name, user_id) settles races.
func (s *Service) CreateCategory(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByNameAndUser(ctx, dto.Name, userID)
	if err != nil {
		return nil, internal.NewInternalError("Internal Server Error", err)
	}
	if existing != nil {
		return nil, internal.ErrCategoryTaken
	}

	c := NewCategory(dto.Name, dto.IconOrDefault(), userID)
	record := ToDataModel(c)
	if err := s.repo.Create(ctx, record); err != nil {
		if internal.IsDuplicateKey(err) {
			return nil, internal.ErrCategoryTaken
		}
		s.logger.Error("failed to create category", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("Internal Server Error", err)
	}

	s.logger.Info("category created", "category_id", record.ID, "user_id", userID)
	return FromDataModel(record), nil
}

// IsUsableBy reports whether the category exists and is a default or owned
// by userID. The expense flow uses this as its referential policy.
func (s *Service) IsUsableBy(ctx context.Context, categoryID, userID int64) (bool, error) {
	record, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return false, internal.NewInternalError("Internal Server Error", err)
	}
	if record == nil {
		return false, nil
	}
	return FromDataModel(record).VisibleTo(userID), nil
}
