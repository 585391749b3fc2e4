package postgres

import (
	"context"
	"time"

	expenseDatamodel "expensetracker/internal/core/datamodel/expense"
	"expensetracker/internal/expense"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

// expenseRow carries the category name alongside the expense columns when
// joining against categories.
type expenseRow struct {
	ID            int64
	Title         string
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod string
	Notes         *string
	CategoryID    int64
	CategoryName  string
	UserID        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (row *expenseRow) toDomain() *expense.Expense {
	return &expense.Expense{
		ID:            row.ID,
		Title:         row.Title,
		Amount:        row.Amount,
		PaymentDate:   row.PaymentDate,
		PaymentMethod: expense.PaymentMethod(row.PaymentMethod),
		Notes:         row.Notes,
		CategoryID:    row.CategoryID,
		CategoryName:  row.CategoryName,
		UserID:        row.UserID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toDomainSlice(rows []expenseRow) []*expense.Expense {
	out := make([]*expense.Expense, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expenseDatamodel.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExpenseRepository) GetByUser(ctx context.Context, userID int64) ([]*expense.Expense, error) {
	var rows []expenseRow
	err := r.db.WithContext(ctx).
		Table("expenses").
		Select("expenses.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ?", userID).
		Order("expenses.payment_date DESC, expenses.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

func (r *ExpenseRepository) GetByUserBetween(ctx context.Context, userID int64, from, to time.Time) ([]*expense.Expense, error) {
	var rows []expenseRow
	err := r.db.WithContext(ctx).
		Table("expenses").
		Select("expenses.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ? AND expenses.payment_date >= ? AND expenses.payment_date <= ?", userID, from, to).
		Order("expenses.payment_date DESC, expenses.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}
