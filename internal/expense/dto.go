package expense

import (
	"strings"
	"time"

	"expensetracker/internal"

	"github.com/shopspring/decimal"
)

type CreateExpenseDTO struct {
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         *string         `json:"notes"`
	CategoryID    int64           `json:"category_id"`
}

func (d *CreateExpenseDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" || d.Amount.IsZero() || d.PaymentDate == "" || d.CategoryID == 0 {
		return internal.NewValidationError("Please provide title, amount, payment date and category", internal.ErrCodeValidationFailed)
	}
	if d.Amount.IsNegative() {
		return internal.NewValidationError("Amount must be a positive number", internal.ErrCodeInvalidAmount)
	}
	if d.Amount.Exponent() < -2 {
		return internal.NewValidationError("Amount cannot have more than two decimal places", internal.ErrCodeInvalidAmount)
	}
	if _, err := time.Parse("2006-01-02", d.PaymentDate); err != nil {
		return internal.NewValidationError("Payment date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	if d.PaymentMethod != "" && !PaymentMethod(d.PaymentMethod).Valid() {
		return internal.NewValidationError("Invalid payment method", internal.ErrCodeInvalidPayment)
	}
	return nil
}

// Method returns the payment method, defaulting to cash when omitted.
func (d *CreateExpenseDTO) Method() PaymentMethod {
	if d.PaymentMethod == "" {
		return PaymentCash
	}
	return PaymentMethod(d.PaymentMethod)
}

func (d *CreateExpenseDTO) Date() time.Time {
	t, _ := time.Parse("2006-01-02", d.PaymentDate)
	return t
}
