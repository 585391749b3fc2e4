package expense

import (
	"context"
	"log/slog"
	"time"

	"expensetracker/internal"
	expenseDatamodel "expensetracker/internal/core/datamodel/expense"
)

type RepositoryAPI interface {
	Create(ctx context.Context, e *expenseDatamodel.Expense) error
	GetByUser(ctx context.Context, userID int64) ([]*Expense, error)
	GetByUserBetween(ctx context.Context, userID int64, from, to time.Time) ([]*Expense, error)
}

// CategoryChecker decides whether a category may be attached to a user's expense.
type CategoryChecker interface {
	IsUsableBy(ctx context.Context, categoryID, userID int64) (bool, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryChecker
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		logger:     logger,
	}
}

func (s *Service) CreateExpense(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	usable, err := s.categories.IsUsableBy(ctx, dto.CategoryID, userID)
	if err != nil {
		s.logger.Error("failed to check category", "error", err, "category_id", dto.CategoryID)
		return nil, internal.NewInternalError("Failed to create expense", err)
	}
	if !usable {
		return nil, internal.NewValidationError("Invalid category for this user", internal.ErrCodeInvalidCategory)
	}

	dm := &expenseDatamodel.Expense{
		Title:         dto.Title,
		Amount:        dto.Amount,
		PaymentDate:   dto.Date(),
		PaymentMethod: string(dto.Method()),
		Notes:         dto.Notes,
		CategoryID:    dto.CategoryID,
		UserID:        userID,
	}
	if err := s.repo.Create(ctx, dm); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to create expense", err)
	}

	return FromDataModel(dm), nil
}

// GetMyExpenses returns all expenses of the authenticated user, newest payment first.
func (s *Service) GetMyExpenses(ctx context.Context, userID int64) ([]*Expense, error) {
	expenses, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch expenses", err)
	}
	return expenses, nil
}

// GetExpensesByUserID lists any user's expenses by id. Access control is
// left to the route configuration.
func (s *Service) GetExpensesByUserID(ctx context.Context, userID int64) ([]*Expense, error) {
	return s.GetMyExpenses(ctx, userID)
}

func (s *Service) GetExpensesBetween(ctx context.Context, userID int64, from, to time.Time) ([]*Expense, error) {
	expenses, err := s.repo.GetByUserBetween(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("failed to list expenses by range", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch expenses", err)
	}
	return expenses, nil
}
