package report

import (
	"context"
	"log/slog"
	"time"

	"expensetracker/internal"
	"expensetracker/internal/expense"
)

type ExpensesAPI interface {
	GetExpensesBetween(ctx context.Context, userID int64, from, to time.Time) ([]*expense.Expense, error)
}

type Service struct {
	expenses ExpensesAPI
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(expenses ExpensesAPI, logger *slog.Logger) *Service {
	return &Service{
		expenses: expenses,
		now:      time.Now,
		logger:   logger,
	}
}

// MonthlyReport aggregates the authenticated user's expenses for the
// current calendar month.
func (s *Service) MonthlyReport(ctx context.Context, userID int64) (Report, error) {
	first, last := MonthBounds(s.now())
	rows, err := s.expenses.GetExpensesBetween(ctx, userID, first, last)
	if err != nil {
		s.logger.Error("failed to build monthly report", "error", err, "user_id", userID)
		return Report{}, err
	}
	return Build(rows), nil
}

// DailyReport aggregates a single day. An empty date means today; a
// malformed one is a validation error.
func (s *Service) DailyReport(ctx context.Context, userID int64, date string) (Report, error) {
	day := s.now()
	if date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return Report{}, internal.NewValidationError("Date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		day = parsed
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	rows, err := s.expenses.GetExpensesBetween(ctx, userID, start, start)
	if err != nil {
		s.logger.Error("failed to build daily report", "error", err, "user_id", userID)
		return Report{}, err
	}
	return Build(rows), nil
}
