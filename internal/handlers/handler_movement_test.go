package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MovementHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
}

func (suite *MovementHandlerTestSuite) SetupTest() {
	router, v1 := newTestRouter()
	suite.router = router
	suite.mockLedgerService = new(MockLedgerService)
	handlers.RegisterMovementRoutes(v1, suite.mockLedgerService)
}

func (suite *MovementHandlerTestSuite) post(body map[string]interface{}) (int, errorBody) {
	w := httptestServe(suite.router, jsonRequest(http.MethodPost, "/api/v1/movements", body))
	var resp errorBody
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func (suite *MovementHandlerTestSuite) TestPostMovement_Success() {
	movement := &domain.Movement{
		MovementID:       "m1",
		AccountID:        "a1",
		MovementDate:     time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC),
		Kind:             domain.Debit,
		Amount:           decimal.NewFromInt(575),
		ResultingBalance: decimal.NewFromInt(1425),
	}
	suite.mockLedgerService.On("PostMovement", mock.Anything, "a1", domain.Debit, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(575))
	})).Return(movement, nil).Once()

	w := httptestServe(suite.router, jsonRequest(http.MethodPost, "/api/v1/movements", map[string]interface{}{
		"accountID": "a1", "kind": "debit", "amount": 575,
	}))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("m1", resp.MovementID)
	suite.True(resp.ResultingBalance.Equal(decimal.NewFromInt(1425)))
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *MovementHandlerTestSuite) TestPostMovement_InvalidKind() {
	code, body := suite.post(map[string]interface{}{"accountID": "a1", "kind": "TRANSFER", "amount": 10})

	suite.Equal(http.StatusBadRequest, code)
	suite.Equal(string(apperrors.KindInvalidKind), body.Kind)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "PostMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestPostMovement_LedgerRejections() {
	tests := []struct {
		name string
		err  error
		code int
		kind apperrors.Kind
	}{
		{name: "insufficient funds", err: apperrors.ErrInsufficientFunds, code: http.StatusBadRequest, kind: apperrors.KindInsufficientFunds},
		{name: "invalid amount", err: apperrors.ErrInvalidAmount, code: http.StatusBadRequest, kind: apperrors.KindInvalidAmount},
		{name: "inactive account", err: apperrors.ErrInactiveAccount, code: http.StatusBadRequest, kind: apperrors.KindInactiveAccount},
		{name: "missing account", err: apperrors.ErrNotFound, code: http.StatusNotFound, kind: apperrors.KindNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockLedgerService.On("PostMovement", mock.Anything, "a1", domain.Credit, mock.Anything).
				Return(nil, tt.err).Once()

			code, body := suite.post(map[string]interface{}{"accountID": "a1", "kind": "CREDIT", "amount": 10})

			suite.Equal(tt.code, code)
			suite.Equal(string(tt.kind), body.Kind)
		})
	}
}

func (suite *MovementHandlerTestSuite) TestListMovementsByAccount_PassesToken() {
	next := "abc"
	suite.mockLedgerService.On("ListMovementsByAccount", mock.Anything, "a1", dto.AccountMovementsParams{Limit: 2, NextToken: "tok"}).
		Return(&dto.ListMovementsResponse{Movements: []dto.MovementResponse{{MovementID: "m1"}}, NextToken: &next}, nil).Once()

	w := httptestServe(suite.router, jsonRequest(http.MethodGet, "/api/v1/movements/account/a1?limit=2&nextToken=tok", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListMovementsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("abc", *resp.NextToken)
}

func (suite *MovementHandlerTestSuite) TestDeleteMovement() {
	suite.mockLedgerService.On("DeleteMovement", mock.Anything, "m1").Return(nil).Once()

	w := httptestServe(suite.router, jsonRequest(http.MethodDelete, "/api/v1/movements/m1", nil))

	suite.Equal(http.StatusNoContent, w.Code)
}

func TestMovementHandler(t *testing.T) {
	suite.Run(t, new(MovementHandlerTestSuite))
}
