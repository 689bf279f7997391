package dto

import (
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementQuery carries the query string of the statement endpoints.
type StatementQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
	Format    string `form:"format"`
}

// StatementRowResponse is one row of a structured statement.
type StatementRowResponse struct {
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

// ToStatementResponse converts statement rows to their wire form, preserving order.
func ToStatementResponse(rows []domain.StatementRow) []StatementRowResponse {
	res := make([]StatementRowResponse, len(rows))
	for i, r := range rows {
		res[i] = StatementRowResponse{
			Date:           r.Date,
			CustomerName:   r.CustomerName,
			AccountID:      r.AccountID,
			AccountNumber:  r.AccountNumber,
			AccountType:    r.AccountType,
			OpeningBalance: r.OpeningBalance,
			Active:         r.Active,
			Amount:         r.Amount,
			MovementKind:   r.MovementKind,
			ClosingBalance: r.ClosingBalance,
		}
	}
	return res
}
