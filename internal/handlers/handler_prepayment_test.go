package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreatePrepayment_Success() {
	suite.prepayments.On("CreatePrepayment", mock.Anything,
		mock.MatchedBy(func(req dto.CreatePrepaymentRequest) bool {
			return req.CustomerID == 7 && req.Amount.Equal(decimal.NewFromInt(1000)) && req.Method == domain.MethodBank
		}),
		suite.userID,
	).Return(&domain.CustomerPrepayment{
		PrepaymentID: "p1",
		Number:       "ADV/2024/0001",
		CustomerID:   7,
		Amount:       decimal.NewFromInt(1000),
		UsedAmount:   decimal.Zero,
		Status:       domain.PrepaymentActive,
		Method:       domain.MethodBank,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/prepayments",
		`{"customerID":7,"amount":"1000","date":"2024-05-01T00:00:00Z","method":"BANK_TRANSFER"}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PrepaymentResponse
	suite.decode(w, &resp)
	suite.Equal("ADV/2024/0001", resp.Number)
	suite.True(resp.Remaining.Equal(decimal.NewFromInt(1000)))
}

func (suite *HandlerTestSuite) TestCreatePrepayment_NonPositiveAmount() {
	w := suite.do(http.MethodPost, "/api/v1/prepayments",
		`{"customerID":7,"amount":"-5","date":"2024-05-01T00:00:00Z","method":"CASH"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPrepaymentAmounts_SubCentRejected() {
	w := suite.do(http.MethodPost, "/api/v1/prepayments",
		`{"customerID":7,"amount":"100.001","date":"2024-05-01T00:00:00Z","method":"CASH"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/prepayments/p1/applications", `{"invoiceID":42,"amount":"0.001"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.prepayments.AssertNotCalled(suite.T(), "CreatePrepayment", mock.Anything, mock.Anything, mock.Anything)
	suite.prepayments.AssertNotCalled(suite.T(), "ApplyPrepayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestApplyPrepayment_Success() {
	suite.prepayments.On("ApplyPrepayment", mock.Anything, "p1",
		mock.MatchedBy(func(req dto.ApplyPrepaymentRequest) bool {
			return req.InvoiceID == 42 && req.Amount.Equal(decimal.NewFromInt(300))
		}),
		suite.userID,
	).Return(&domain.PrepaymentApplication{
		ApplicationID: "a1",
		PrepaymentID:  "p1",
		InvoiceID:     42,
		AppliedAmount: decimal.NewFromInt(300),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/prepayments/p1/applications", `{"invoiceID":42,"amount":"300"}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PrepaymentApplicationResponse
	suite.decode(w, &resp)
	suite.Equal("a1", resp.ApplicationID)
}

func (suite *HandlerTestSuite) TestApplyPrepayment_InsufficientBalance() {
	suite.prepayments.On("ApplyPrepayment", mock.Anything, "p1", mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: remaining 200.00 is less than 300.00", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/prepayments/p1/applications", `{"invoiceID":42,"amount":"300"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestReverseApplication() {
	original := "a1"
	suite.prepayments.On("ReverseApplication", mock.Anything, original, suite.userID).
		Return(&domain.PrepaymentApplication{
			ApplicationID: "a2",
			PrepaymentID:  "p1",
			AppliedAmount: decimal.NewFromInt(-300),
			ReversalOf:    &original,
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/prepayment-applications/a1/reverse", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PrepaymentApplicationResponse
	suite.decode(w, &resp)
	suite.True(resp.AppliedAmount.IsNegative())
}

func (suite *HandlerTestSuite) TestGetWallet() {
	suite.prepayments.On("GetWallet", mock.Anything, int64(7)).Return(&domain.Wallet{
		CustomerID: 7,
		Balance:    decimal.NewFromInt(700),
		Prepayments: []domain.CustomerPrepayment{
			{PrepaymentID: "p1", Amount: decimal.NewFromInt(1000), UsedAmount: decimal.NewFromInt(300), Status: domain.PrepaymentActive},
		},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/7/wallet", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WalletResponse
	suite.decode(w, &resp)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(700)))
	suite.Len(resp.Prepayments, 1)
}

func (suite *HandlerTestSuite) TestGetWallet_BadCustomerID() {
	w := suite.do(http.MethodGet, "/api/v1/customers/abc/wallet", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestReconcilePrepayments_AllCustomers() {
	suite.prepayments.On("ReconcilePrepayments", mock.Anything, (*int64)(nil)).Return(3, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/prepayments/reconcile", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ReconcilePrepaymentsResponse
	suite.decode(w, &resp)
	suite.Equal(3, resp.Corrected)
}

func (suite *HandlerTestSuite) TestReconcilePrepayments_OneCustomer() {
	suite.prepayments.On("ReconcilePrepayments", mock.Anything,
		mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 7 }),
	).Return(0, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/prepayments/reconcile", `{"customerID":7}`)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestEvaluateCredit() {
	suite.credit.On("Evaluate", mock.Anything, int64(7),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("2500.50")) }),
	).Return(&domain.CreditEvaluation{
		CustomerID:           7,
		CreditLimit:          decimal.NewFromInt(10000),
		ProjectedOutstanding: decimal.RequireFromString("12500.50"),
		ExceedsLimit:         true,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/7/credit?additional=2500.50", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CreditEvaluationResponse
	suite.decode(w, &resp)
	suite.True(resp.ExceedsLimit)
}

func (suite *HandlerTestSuite) TestEvaluateCredit_DefaultsToZero() {
	suite.credit.On("Evaluate", mock.Anything, int64(7),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
	).Return(&domain.CreditEvaluation{CustomerID: 7}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/7/credit", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestEvaluateCredit_BadAmount() {
	w := suite.do(http.MethodGet, "/api/v1/customers/7/credit?additional=lots", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}
