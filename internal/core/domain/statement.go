package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// NoMovementsLabel marks the placeholder row of an account without movements in range.
	NoMovementsLabel = "No movements"
	// UnavailableCustomerName is shown when the customer directory cannot resolve a name.
	UnavailableCustomerName = "Customer unavailable"
)

// StatementRow is one line of a consolidated customer statement.
type StatementRow struct {
	Date           time.Time       `json:"date"`
	CustomerName   string          `json:"customerName"`
	AccountID      string          `json:"accountID"`
	AccountNumber  string          `json:"accountNumber"`
	AccountType    string          `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Active         bool            `json:"active"`
	Amount         decimal.Decimal `json:"amount"`
	MovementKind   string          `json:"movementKind"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// IsPlaceholder reports whether the row stands in for a dormant account.
func (r StatementRow) IsPlaceholder() bool {
	return r.MovementKind == NoMovementsLabel
}

// RowsForAccount derives the statement rows of one account from its movements in range.
// Movements are ordered ascending by date; an account without movements yields a single
// placeholder row. now is used when the account has no creation date.
func RowsForAccount(account Account, movements []Movement, customerName string, now time.Time) []StatementRow {
	if len(movements) == 0 {
		date := account.CreatedAt
		if date.IsZero() {
			date = now
		}
		return []StatementRow{{
			Date:           date,
			CustomerName:   customerName,
			AccountID:      account.AccountID,
			AccountNumber:  account.AccountNumber,
			AccountType:    account.AccountType,
			OpeningBalance: account.OpeningBalance(),
			Active:         account.Active,
			Amount:         decimal.Zero,
			MovementKind:   NoMovementsLabel,
			ClosingBalance: account.CurrentBalance,
		}}
	}

	ordered := make([]Movement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MovementDate.Before(ordered[j].MovementDate)
	})

	rows := make([]StatementRow, 0, len(ordered))
	for _, m := range ordered {
		rows = append(rows, StatementRow{
			Date:           m.MovementDate,
			CustomerName:   customerName,
			AccountID:      account.AccountID,
			AccountNumber:  account.AccountNumber,
			AccountType:    account.AccountType,
			OpeningBalance: m.OpeningBalance(),
			Active:         account.Active,
			Amount:         m.Amount,
			MovementKind:   m.Kind.Label(),
			ClosingBalance: m.ResultingBalance,
		})
	}
	return rows
}

// SortStatementRows orders rows newest first. Rows with equal dates from the same
// account keep their relative order; across accounts the account id decides.
func SortStatementRows(rows []StatementRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		if rows[i].AccountID != rows[j].AccountID {
			return rows[i].AccountID < rows[j].AccountID
		}
		return false
	})
}
