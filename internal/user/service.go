package user

import (
	"context"
	"log/slog"

	"expensetracker/internal"
	userDatamodel "expensetracker/internal/core/datamodel/user"
	"expensetracker/internal/expense"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, u *userDatamodel.User) error
}

type ExpensesAPI interface {
	GetExpensesByUserID(ctx context.Context, userID int64) ([]*expense.Expense, error)
}

type Service struct {
	repo     RepositoryAPI
	expenses ExpensesAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, expenses ExpensesAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
		logger:   logger,
	}
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to update profile", err)
	}
	if current == nil {
		return nil, internal.ErrUserNotFound
	}

	current.FirstName = dto.FirstName
	current.LastName = dto.LastName
	current.Phone = dto.Phone
	current.Gender = dto.Gender
	current.BirthDate = dto.ParsedBirthDate()

	if err := s.repo.UpdateProfile(ctx, current); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to update profile", err)
	}

	return ProfileFromDataModel(current), nil
}

func (s *Service) GetUsers(ctx context.Context) ([]*Profile, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("Failed to fetch users", err)
	}
	return ProfilesFromDataModel(users), nil
}

func (s *Service) UsersCount(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return 0, internal.NewInternalError("Failed to count users", err)
	}
	return count, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*Profile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("Failed to fetch user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return ProfileFromDataModel(u), nil
}

// GetUserTransactions returns the given user's expenses. The target user
// must exist.
func (s *Service) GetUserTransactions(ctx context.Context, id int64) ([]*expense.Expense, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("Failed to fetch transactions", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return s.expenses.GetExpensesByUserID(ctx, id)
}
