package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

func fy2024() *domain.FiscalYear {
	return &domain.FiscalYear{
		FiscalYearID: "fy-2024",
		Code:         "FY2024",
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *HandlerTestSuite) TestCreateFiscalYear() {
	suite.fiscalYears.On("Create", mock.Anything,
		mock.MatchedBy(func(req dto.CreateFiscalYearRequest) bool {
			return req.StartDate.Year() == 2024 && req.EndDate.Month() == time.December
		}),
		suite.userID,
	).Return(fy2024(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/fiscal-years", `{"startDate":"2024-01-01T00:00:00Z","endDate":"2024-12-31T00:00:00Z"}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.FiscalYearResponse
	suite.decode(w, &resp)
	suite.Equal("FY2024", resp.Code)
}

func (suite *HandlerTestSuite) TestCreateFiscalYear_Overlap() {
	suite.fiscalYears.On("Create", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: overlaps FY2024", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/fiscal-years", `{"startDate":"2024-06-01T00:00:00Z","endDate":"2025-05-31T00:00:00Z"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListFiscalYears() {
	suite.fiscalYears.On("List", mock.Anything).Return([]domain.FiscalYear{*fy2024()}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/fiscal-years", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.FiscalYearResponse
	suite.decode(w, &resp)
	suite.Len(resp, 1)
}

func (suite *HandlerTestSuite) TestGetCurrentFiscalYear_NoneSet() {
	suite.fiscalYears.On("GetCurrent", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/fiscal-years/current", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestEditFiscalYear_Closed() {
	suite.fiscalYears.On("Edit", mock.Anything, "fy-2023", mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: FY2023 is closed", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPut, "/api/v1/fiscal-years/fy-2023", `{"startDate":"2023-01-01T00:00:00Z","endDate":"2023-12-31T00:00:00Z"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestSetCurrentFiscalYear() {
	current := fy2024()
	current.IsCurrent = true
	suite.fiscalYears.On("SetCurrent", mock.Anything, "fy-2024", suite.userID).Return(current, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/fiscal-years/fy-2024/set-current", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FiscalYearResponse
	suite.decode(w, &resp)
	suite.True(resp.IsCurrent)
}

func (suite *HandlerTestSuite) TestCloseFiscalYear() {
	closed := fy2024()
	closedAt := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	closed.IsClosed = true
	closed.ClosedAt = &closedAt
	suite.fiscalYears.On("Close", mock.Anything, "fy-2024", suite.userID).Return(closed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/fiscal-years/fy-2024/close", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FiscalYearResponse
	suite.decode(w, &resp)
	suite.True(resp.IsClosed)
	suite.Require().NotNil(resp.ClosedAt)
}
