package services

import (
	"context"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// StatementService builds consolidated customer statements.
type StatementService interface {
	// BuildStatement merges the movements of every account the customer owns within
	// [start, end] into rows ordered newest first.
	BuildStatement(ctx context.Context, customerID string, start, end time.Time) ([]domain.StatementRow, error)
}

// StatementFormat selects the projection produced by a StatementRenderer.
type StatementFormat string

const (
	FormatStructured StatementFormat = "structured"
	FormatTabular    StatementFormat = "tabular"
)

// RenderedStatement is the output of a StatementRenderer.
// Rows is set for the structured format, Content for the tabular one.
type RenderedStatement struct {
	Format      StatementFormat
	ContentType string
	Rows        []domain.StatementRow
	Content     []byte
}

// StatementRenderer projects statement rows into an output format.
type StatementRenderer interface {
	Render(rows []domain.StatementRow, format StatementFormat) (*RenderedStatement, error)
}
