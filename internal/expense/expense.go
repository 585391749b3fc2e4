package expense

import (
	"time"

	expenseDatamodel "expensetracker/internal/core/datamodel/expense"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how an expense was paid.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentOther        PaymentMethod = "other"
	PaymentUPI          PaymentMethod = "UPI"
)

var validPaymentMethods = map[PaymentMethod]struct{}{
	PaymentCash:         {},
	PaymentCreditCard:   {},
	PaymentDebitCard:    {},
	PaymentBankTransfer: {},
	PaymentOther:        {},
	PaymentUPI:          {},
}

func (p PaymentMethod) Valid() bool {
	_, ok := validPaymentMethods[p]
	return ok
}

type Expense struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Notes         *string         `json:"notes,omitempty"`
	CategoryID    int64           `json:"categoryId"`
	CategoryName  string          `json:"categoryName,omitempty"`
	UserID        int64           `json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func FromDataModel(dm *expenseDatamodel.Expense) *Expense {
	if dm == nil {
		return nil
	}
	return &Expense{
		ID:            dm.ID,
		Title:         dm.Title,
		Amount:        dm.Amount,
		PaymentDate:   dm.PaymentDate,
		PaymentMethod: PaymentMethod(dm.PaymentMethod),
		Notes:         dm.Notes,
		CategoryID:    dm.CategoryID,
		UserID:        dm.UserID,
		CreatedAt:     dm.CreatedAt,
		UpdatedAt:     dm.UpdatedAt,
	}
}

func FromDataModelSlice(dms []*expenseDatamodel.Expense) []*Expense {
	out := make([]*Expense, 0, len(dms))
	for _, dm := range dms {
		out = append(out, FromDataModel(dm))
	}
	return out
}

func (e *Expense) ToDataModel() *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:            e.ID,
		Title:         e.Title,
		Amount:        e.Amount,
		PaymentDate:   e.PaymentDate,
		PaymentMethod: string(e.PaymentMethod),
		Notes:         e.Notes,
		CategoryID:    e.CategoryID,
		UserID:        e.UserID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
