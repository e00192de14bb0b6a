package handlers_test

import (
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleTrialBalance() *domain.TrialBalance {
	return &domain.TrialBalance{
		Rows: []domain.TrialBalanceRow{
			{Code: "1001", Category: domain.Asset, Debit: decimal.NewFromInt(900), Credit: decimal.Zero},
			{Code: "3001", Category: domain.Equity, Debit: decimal.Zero, Credit: decimal.NewFromInt(900)},
		},
		TotalDebit:  decimal.NewFromInt(900),
		TotalCredit: decimal.NewFromInt(900),
		Balanced:    true,
	}
}

func (suite *HandlerTestSuite) TestTrialBalance_Current() {
	suite.reporting.On("TrialBalance", mock.Anything).Return(sampleTrialBalance(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.decode(w, &resp)
	suite.Len(resp.Rows, 2)
	suite.True(resp.Balanced)
	suite.reporting.AssertNotCalled(suite.T(), "TrialBalanceAsOf", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTrialBalance_AsOf() {
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.reporting.On("TrialBalanceAsOf", mock.Anything,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(asOf) }),
	).Return(sampleTrialBalance(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestTrialBalance_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=31/03/2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestTrialBalance_ServiceError() {
	suite.reporting.On("TrialBalance", mock.Anything).Return(nil, errors.New("db down")).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlerTestSuite) TestAdminRecomputeAll() {
	suite.balances.On("RecomputeAll", mock.Anything).Return(42, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/admin/balances/recompute-all", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RecomputeAllResponse
	suite.decode(w, &resp)
	suite.Equal(42, resp.Recomputed)
}

func (suite *HandlerTestSuite) TestAdminBackfillPostings() {
	suite.prepayments.On("BackfillPrepaymentPostings", mock.Anything).Return(5, 1, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/admin/prepayments/backfill-postings", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BackfillPostingsResponse
	suite.decode(w, &resp)
	suite.Equal(5, resp.Posted)
	suite.Equal(1, resp.Failed)
}
