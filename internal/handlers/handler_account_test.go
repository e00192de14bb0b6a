package handlers_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	accountID := uuid.NewString()
	suite.accounts.On("CreateAccount", mock.Anything,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Code == "1001" && req.Category == domain.Asset && req.OpeningBalance.Equal(decimal.NewFromInt(500))
		}),
		suite.userID,
	).Return(&domain.Account{
		AccountID:      accountID,
		Code:           "1001",
		Name:           "Cash",
		Category:       domain.Asset,
		OpeningBalance: decimal.NewFromInt(500),
		CurrentBalance: decimal.NewFromInt(500),
		IsActive:       true,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"1001","name":"Cash","category":"ASSET","openingBalance":"500"}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(accountID, resp.AccountID)
	suite.True(resp.CurrentBalance.Equal(decimal.NewFromInt(500)))
}

func (suite *HandlerTestSuite) TestCreateAccount_UnknownCategory() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"9000","name":"Mystery","category":"ASSETS"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateCode() {
	suite.accounts.On("CreateAccount", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: account code 1001", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"1001","name":"Cash","category":"ASSET"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.accounts.On("GetAccountByCode", mock.Anything, "4999").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/4999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_DefaultPaging() {
	suite.accounts.On("ListAccounts", mock.Anything, 50, 0).
		Return([]domain.Account{{Code: "1001"}, {Code: "1002"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.decode(w, &resp)
	suite.Len(resp, 2)
}

func (suite *HandlerTestSuite) TestListAccounts_LimitTooLarge() {
	w := suite.do(http.MethodGet, "/api/v1/accounts?limit=5000", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	suite.accounts.On("DeactivateAccount", mock.Anything, "1101", suite.userID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/1101", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateAccount_SystemAccountConflict() {
	suite.accounts.On("DeactivateAccount", mock.Anything, "1001", suite.userID).
		Return(fmt.Errorf("%w: 1001 is a system account", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/1001", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestRecomputeBalance() {
	suite.balances.On("RecomputeByCode", mock.Anything, "1001").Return(&domain.Account{
		AccountID:      "acc-1",
		Code:           "1001",
		CurrentBalance: decimal.RequireFromString("1250.75"),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/1001/recompute", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalanceResponse
	suite.decode(w, &resp)
	suite.Equal("1001", resp.Code)
	suite.True(resp.Balance.Equal(decimal.RequireFromString("1250.75")))
}

func (suite *HandlerTestSuite) TestRecomputeBalance_UnexpectedErrorHidesDetail() {
	suite.balances.On("RecomputeByCode", mock.Anything, "1001").
		Return(nil, errors.New("connection reset by peer")).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/1001/recompute", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlerTestSuite) TestListAccountLines() {
	next := "tok"
	suite.journals.On("ListLinesByAccount", mock.Anything, "1001",
		mock.MatchedBy(func(p dto.ListJournalsParams) bool { return p.Limit == 10 }),
	).Return(&dto.ListLinesResponse{
		Lines:     []dto.JournalLineResponse{{LineID: "l1", AccountCode: "1001", Debit: decimal.NewFromInt(100)}},
		NextToken: &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/1001/lines?limit=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListLinesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Lines, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("tok", *resp.NextToken)
}
