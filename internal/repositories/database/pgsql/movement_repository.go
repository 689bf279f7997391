package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/account_ledger/internal/models"
	"github.com/SscSPs/account_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movementColumns = `movement_id, account_id, movement_date, kind, amount, resulting_balance, created_at`

type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool) *PgxMovementRepository {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func scanMovement(row pgx.Row) (domain.Movement, error) {
	var m models.Movement
	err := row.Scan(
		&m.MovementID,
		&m.AccountID,
		&m.MovementDate,
		&m.Kind,
		&m.Amount,
		&m.ResultingBalance,
		&m.CreatedAt,
	)
	if err != nil {
		return domain.Movement{}, err
	}
	return mapping.ToDomainMovement(m), nil
}

func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1;`
	m, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	return &m, nil
}

func (r *PgxMovementRepository) ListMovements(ctx context.Context, limit int, offset int) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		ORDER BY movement_date DESC, movement_id DESC
		LIMIT $1 OFFSET $2;
	`
	return r.queryMovements(ctx, query, limit, offset)
}

func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string, limit int, after *portsrepo.MovementCursor) ([]domain.Movement, error) {
	if after == nil {
		query := `
			SELECT ` + movementColumns + `
			FROM movements
			WHERE account_id = $1
			ORDER BY movement_date DESC, movement_id DESC
			LIMIT $2;
		`
		return r.queryMovements(ctx, query, accountID, limit)
	}
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1 AND (movement_date, movement_id) < ($2, $3)
		ORDER BY movement_date DESC, movement_id DESC
		LIMIT $4;
	`
	return r.queryMovements(ctx, query, accountID, after.MovementDate, after.MovementID, limit)
}

func (r *PgxMovementRepository) FindMovementsInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1 AND movement_date BETWEEN $2 AND $3;
	`
	return r.queryMovements(ctx, query, accountID, from, to)
}

func (r *PgxMovementRepository) queryMovements(ctx context.Context, query string, args ...any) ([]domain.Movement, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return movements, nil
}

// UpdateMovement overwrites kind, amount and resulting balance of a stored movement.
func (r *PgxMovementRepository) UpdateMovement(ctx context.Context, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)
	query := `
		UPDATE movements
		SET kind = $2, amount = $3, resulting_balance = $4
		WHERE movement_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.MovementID, m.Kind, m.Amount, m.ResultingBalance)
	if err != nil {
		return fmt.Errorf("failed to update movement %s: %w", m.MovementID, err)
	}
	return requireOneRow(tag)
}

func (r *PgxMovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return fmt.Errorf("failed to delete movement %s: %w", movementID, err)
	}
	return requireOneRow(tag)
}
