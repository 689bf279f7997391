package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
)

const (
	// ContentTypeJSON is returned for structured statements.
	ContentTypeJSON = "application/json"
	// ContentTypeXLSX is returned for tabular statements.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ParseFormat maps a request format name to a statement format. An empty name means structured.
func ParseFormat(name string) (portssvc.StatementFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json", "structured":
		return portssvc.FormatStructured, nil
	case "excel", "xlsx", "tabular":
		return portssvc.FormatTabular, nil
	default:
		return "", fmt.Errorf("%w: unsupported statement format '%s'", apperrors.ErrValidation, name)
	}
}

// Filename is the download name of a tabular statement generated at the given time.
func Filename(customerID string, at time.Time) string {
	return fmt.Sprintf("account_statement_customer_%s_%s.xlsx", customerID, at.Format("20060102_150405"))
}
