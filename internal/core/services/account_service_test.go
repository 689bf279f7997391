package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/core/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	now      time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountClock(func() time.Time { return suite.now }))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountNumber:  " 478758 ",
		AccountType:    "Savings",
		InitialBalance: decimal.NewFromInt(2000),
		CustomerID:     "c1",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountNumber == "478758" &&
			acc.CurrentBalance.Equal(acc.InitialBalance) &&
			acc.Active
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal("478758", created.AccountNumber)
	suite.True(created.CurrentBalance.Equal(decimal.NewFromInt(2000)))
	suite.True(created.Active)
	suite.Equal(suite.now, created.CreatedAt)
	suite.Equal(suite.now, created.UpdatedAt)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InactiveRequested() {
	ctx := context.Background()
	inactive := false
	req := dto.CreateAccountRequest{
		AccountNumber:  "1",
		AccountType:    "Checking",
		InitialBalance: decimal.NewFromInt(10),
		CustomerID:     "c1",
		Active:         &inactive,
	}
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)
	suite.Require().NoError(err)
	suite.False(created.Active)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsUnstorableInitialBalance() {
	for _, amount := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-5),
		decimal.RequireFromString("10.00001"),
		decimal.New(1, 15),
	} {
		_, err := suite.service.CreateAccount(context.Background(), dto.CreateAccountRequest{
			AccountNumber: "1", AccountType: "Savings", InitialBalance: amount, CustomerID: "c1",
		})
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateNumber() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		AccountNumber: "1", AccountType: "Savings", InitialBalance: decimal.NewFromInt(1), CustomerID: "c1",
	})
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()
	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, testID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, 10, 0).Return(nil, assert.AnError).Once()

	accounts, err := suite.service.ListAccounts(ctx, 10, 0)

	suite.Nil(accounts)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_DoesNotRecomputeBalance() {
	ctx := context.Background()
	original := &domain.Account{
		AccountID:      "a1",
		AccountNumber:  "478758",
		AccountType:    "Savings",
		InitialBalance: decimal.NewFromInt(2000),
		CurrentBalance: decimal.NewFromInt(1425),
		Active:         true,
		AuditFields:    domain.AuditFields{CreatedAt: suite.now.Add(-time.Hour), UpdatedAt: suite.now.Add(-time.Hour)},
	}
	newInitial := decimal.NewFromInt(5000)
	inactive := false

	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(original, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.InitialBalance.Equal(newInitial) &&
			acc.CurrentBalance.Equal(decimal.NewFromInt(1425)) &&
			!acc.Active &&
			acc.UpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, "a1", dto.UpdateAccountRequest{InitialBalance: &newInitial, Active: &inactive})

	suite.Require().NoError(err)
	suite.True(updated.CurrentBalance.Equal(decimal.NewFromInt(1425)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsZeroInitialBalance() {
	ctx := context.Background()
	zero := decimal.Zero
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&domain.Account{AccountID: "a1"}, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, "a1", dto.UpdateAccountRequest{InitialBalance: &zero})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsExtraPrecision() {
	ctx := context.Background()
	precise := decimal.RequireFromString("250.12345")
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&domain.Account{AccountID: "a1"}, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, "a1", dto.UpdateAccountRequest{InitialBalance: &precise})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteAccount", ctx, "a1").Return(nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, "missing").Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteAccount(ctx, "a1"))
	suite.ErrorIs(suite.service.DeleteAccount(ctx, "missing"), apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
