package report

import (
	"time"

	"expensetracker/internal/expense"

	"github.com/shopspring/decimal"
)

// Entry is a single expense as it appears inside a report group.
type Entry struct {
	Title         string          `json:"title"`
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"paymentDate"`
	CategoryID    int64           `json:"categoryId"`
	CategoryName  string          `json:"categoryName,omitempty"`
}

// Group collects all expenses paid on the same day.
type Group struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// Report is the aggregated response for both monthly and daily views.
type Report struct {
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Groups        []Group         `json:"report"`
}

const dateLayout = "2006-01-02"

// Build groups expenses by payment date, newest day first, and sums their
// amounts. Expenses are expected already ordered by payment date descending.
func Build(expenses []*expense.Expense) Report {
	total := decimal.Zero
	groups := make([]Group, 0)
	index := make(map[string]int)

	for _, e := range expenses {
		total = total.Add(e.Amount)
		day := e.PaymentDate.Format(dateLayout)

		entry := Entry{
			Title:         e.Title,
			PaymentMethod: string(e.PaymentMethod),
			Amount:        e.Amount,
			PaymentDate:   day,
			CategoryID:    e.CategoryID,
			CategoryName:  e.CategoryName,
		}

		if i, ok := index[day]; ok {
			groups[i].Entries = append(groups[i].Entries, entry)
			continue
		}
		index[day] = len(groups)
		groups = append(groups, Group{Date: day, Entries: []Entry{entry}})
	}

	return Report{TotalExpenses: total, Groups: groups}
}

// MonthBounds returns the first and last day of the month containing now.
func MonthBounds(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}
