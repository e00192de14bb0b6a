package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/core/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const balancedEntryBody = `{
	"date": "2024-03-15T00:00:00Z",
	"description": "Owner contribution",
	"lines": [
		{"accountCode": "1001", "amount": "250.00"},
		{"accountCode": "3001", "amount": "-250.00"}
	]
}`

func (suite *HandlerTestSuite) TestPostEntry_Success() {
	suite.journals.On("PostEntry", mock.Anything,
		mock.MatchedBy(func(d domain.EntryDraft) bool {
			return d.Prefix == domain.PrefixManual &&
				!d.AutoGenerated &&
				len(d.Lines) == 2 &&
				d.Lines[0].Amount.Equal(decimal.NewFromInt(250)) &&
				d.Lines[1].Amount.Equal(decimal.NewFromInt(-250))
		}),
		suite.userID,
	).Return(&domain.JournalEntry{
		EntryID:     "e1",
		Number:      "JV/2024/0001",
		TotalDebit:  decimal.NewFromInt(250),
		TotalCredit: decimal.NewFromInt(250),
		PostedBy:    suite.userID,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", balancedEntryBody)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("JV/2024/0001", resp.Number)
}

func (suite *HandlerTestSuite) TestPostEntry_ZeroAmountLineRejected() {
	body := `{"date":"2024-03-15T00:00:00Z","description":"x","lines":[{"accountCode":"1001","amount":"0"},{"accountCode":"3001","amount":"0"}]}`

	w := suite.do(http.MethodPost, "/api/v1/journals", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journals.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostEntry_SubCentAmountRejected() {
	body := `{"date":"2024-03-15T00:00:00Z","description":"x","lines":[{"accountCode":"1001","amount":"0.005"},{"accountCode":"1002","amount":"0.005"},{"accountCode":"3001","amount":"-0.01"}]}`

	w := suite.do(http.MethodPost, "/api/v1/journals", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journals.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostEntry_UnknownAccountIsNotFound() {
	suite.journals.On("PostEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: 3001", services.ErrUnknownAccount)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", balancedEntryBody)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "3001")
}

func (suite *HandlerTestSuite) TestPostEntry_Unbalanced() {
	suite.journals.On("PostEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: debits 250.00 do not equal credits 200.00", apperrors.ErrValidation)).Once()

	body := `{"date":"2024-03-15T00:00:00Z","description":"x","lines":[{"accountCode":"1001","amount":"250"},{"accountCode":"3001","amount":"-200"}]}`
	w := suite.do(http.MethodPost, "/api/v1/journals", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "do not equal")
}

func (suite *HandlerTestSuite) TestPostEntry_ClosedFiscalYear() {
	suite.journals.On("PostEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: fiscal year FY2023 is closed", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", balancedEntryBody)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetEntry_ByNumberWithSlashes() {
	number := "JV/2024/0007"
	suite.journals.On("GetEntryByNumber", mock.Anything, number).
		Return(&domain.JournalEntry{EntryID: "e7", Number: number}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals/entry?number="+url.QueryEscape(number), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal(number, resp.Number)
}

func (suite *HandlerTestSuite) TestGetEntry_MissingNumber() {
	w := suite.do(http.MethodGet, "/api/v1/journals/entry", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListEntries_PassesToken() {
	suite.journals.On("ListEntries", mock.Anything,
		mock.MatchedBy(func(p dto.ListJournalsParams) bool { return p.Limit == 20 && p.NextToken == "abc" }),
	).Return(&dto.ListJournalsResponse{Entries: []dto.JournalEntryResponse{{Number: "JV/2024/0002"}}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals?nextToken=abc", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.NextToken)
}

func (suite *HandlerTestSuite) TestReverseEntry() {
	original := "SAL/2024/0003"
	suite.journals.On("ReverseEntry", mock.Anything, original, suite.userID).
		Return(&domain.JournalEntry{EntryID: "e9", Number: "REV/2024/0001", ReversalOf: &original}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/reverse", dto.ReverseJournalRequest{Number: original})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("REV/2024/0001", resp.Number)
	suite.Require().NotNil(resp.ReversalOf)
}

func (suite *HandlerTestSuite) TestReverseEntry_AlreadyReversed() {
	suite.journals.On("ReverseEntry", mock.Anything, "JV/2024/0001", suite.userID).
		Return(nil, fmt.Errorf("%w: entry already reversed", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/reverse", dto.ReverseJournalRequest{Number: "JV/2024/0001"})

	suite.Equal(http.StatusConflict, w.Code)
}
