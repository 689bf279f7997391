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
	"github.com/SscSPs/account_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	publisher *recordingPublisher
	service   portssvc.CustomerSvcFacade
	now       time.Time
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.publisher = &recordingPublisher{}
	suite.now = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	repos := memory.NewRepositoryProvider(memory.NewStore())
	suite.service = services.NewCustomerService(repos.CustomerRepo,
		services.WithEventPublisher(suite.publisher),
		services.WithCustomerClock(func() time.Time { return suite.now }))
}

func (suite *CustomerServiceTestSuite) TestLifecyclePublishesEvents() {
	ctx := context.Background()

	created, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{
		Name:           "Marianela Montalvo",
		Identification: "0102030405",
		Gender:         "F",
		Address:        "Amazonas y NNUU",
		Phone:          "097548965",
	})
	suite.Require().NoError(err)
	suite.True(created.Active)

	name := "Marianela M."
	_, err = suite.service.UpdateCustomer(ctx, created.CustomerID, dto.UpdateCustomerRequest{Name: &name})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteCustomer(ctx, created.CustomerID))

	events := suite.publisher.Events()
	suite.Require().Len(events, 3)
	suite.Equal(domain.CustomerCreated, events[0].EventType)
	suite.Equal(domain.CustomerUpdated, events[1].EventType)
	suite.Equal(domain.CustomerDeleted, events[2].EventType)
	for _, e := range events {
		suite.Equal(created.CustomerID, e.CustomerID)
		suite.Equal("0102030405", e.RelatedID)
		suite.Equal(suite.now, e.Timestamp)
	}
}

func (suite *CustomerServiceTestSuite) TestFailuresPublishNothing() {
	ctx := context.Background()

	_, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: " ", Identification: "1"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "A", Identification: "dup"})
	suite.Require().NoError(err)
	_, err = suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "B", Identification: "dup"})
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	suite.ErrorIs(suite.service.DeleteCustomer(ctx, "missing"), apperrors.ErrNotFound)

	suite.Len(suite.publisher.Events(), 1)
}

func (suite *CustomerServiceTestSuite) TestListCustomers_OnlyActive() {
	ctx := context.Background()
	a, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "A", Identification: "1"})
	suite.Require().NoError(err)
	b, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "B", Identification: "2"})
	suite.Require().NoError(err)

	inactive := false
	_, err = suite.service.UpdateCustomer(ctx, b.CustomerID, dto.UpdateCustomerRequest{Active: &inactive})
	suite.Require().NoError(err)

	list, err := suite.service.ListCustomers(ctx, 10, 0)
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.Equal(a.CustomerID, list[0].CustomerID)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}

func TestNewCustomerService_NilPublisher(t *testing.T) {
	repos := memory.NewRepositoryProvider(memory.NewStore())
	svc := services.NewCustomerService(repos.CustomerRepo, services.WithEventPublisher(nil))

	_, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerRequest{Name: "A", Identification: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
