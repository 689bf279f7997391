package memory

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountLocks_UnknownAccountLeavesNoEntry(t *testing.T) {
	store := NewStore()
	uow := &UnitOfWork{store: store}

	for i := 0; i < 100; i++ {
		err := uow.WithinTx(context.Background(), func(ctx context.Context, tx portsrepo.LedgerTx) error {
			_, err := tx.FindAccountForUpdate(ctx, "ghost-"+strconv.Itoa(i))
			return err
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}
	assert.Zero(t, store.locks.size())
}

func TestAccountLocks_ReleasedAfterUnitOfWorkAndDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &AccountRepository{store: store}
	require.NoError(t, repo.SaveAccount(ctx, domain.Account{
		AccountID:      "a1",
		AccountNumber:  "100",
		InitialBalance: decimal.NewFromInt(10),
		CurrentBalance: decimal.NewFromInt(10),
		Active:         true,
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}))

	err := (&UnitOfWork{store: store}).WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.FindAccountForUpdate(ctx, "a1")
		assert.Equal(t, 1, store.locks.size())
		return err
	})
	require.NoError(t, err)
	assert.Zero(t, store.locks.size())

	require.NoError(t, repo.DeleteAccount(ctx, "a1"))
	assert.Zero(t, store.locks.size())
	assert.ErrorIs(t, repo.DeleteAccount(ctx, "a1"), apperrors.ErrNotFound)
	assert.Zero(t, store.locks.size())
}

func TestAccountLocks_CancelledWaiterReleasesReference(t *testing.T) {
	locks := accountLocks{sems: make(map[string]*accountLock)}
	require.NoError(t, locks.lock(context.Background(), "a1"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, locks.lock(ctx, "a1"), context.DeadlineExceeded)
	assert.Equal(t, 1, locks.size())

	locks.unlock("a1")
	assert.Zero(t, locks.size())
}
