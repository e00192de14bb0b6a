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

const invoiceBody = `{"customerID":7,"invoiceDate":"2024-06-01T00:00:00Z","dueDate":"2024-06-30T00:00:00Z","subTotal":"1000","vatAmount":"75"}`

func (suite *HandlerTestSuite) TestCreateInvoice_OverLimitStillCreated() {
	suite.invoices.On("CreateInvoice", mock.Anything,
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
			return req.CustomerID == 7 && req.SubTotal.Equal(decimal.NewFromInt(1000)) && req.VATAmount.Equal(decimal.NewFromInt(75))
		}),
		suite.userID,
	).Return(
		&domain.Invoice{InvoiceID: 11, Number: "INV/2024/0011", CustomerID: 7, TotalAmount: decimal.NewFromInt(1075), Status: domain.InvoiceUnpaid},
		&domain.CreditEvaluation{CustomerID: 7, ExceedsLimit: true, ProjectedOutstanding: decimal.NewFromInt(11075)},
		nil,
	).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices", invoiceBody)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.CreateInvoiceResponse
	suite.decode(w, &resp)
	suite.Equal("INV/2024/0011", resp.Invoice.Number)
	suite.Require().NotNil(resp.Credit)
	suite.True(resp.Credit.ExceedsLimit)
}

func (suite *HandlerTestSuite) TestCreateInvoice_NegativeVAT() {
	body := `{"customerID":7,"invoiceDate":"2024-06-01T00:00:00Z","dueDate":"2024-06-30T00:00:00Z","subTotal":"1000","vatAmount":"-1"}`
	w := suite.do(http.MethodPost, "/api/v1/invoices", body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestInvoiceAmounts_SubCentRejected() {
	body := `{"customerID":7,"invoiceDate":"2024-06-01T00:00:00Z","dueDate":"2024-06-30T00:00:00Z","subTotal":"1000.125","vatAmount":"75"}`
	w := suite.do(http.MethodPost, "/api/v1/invoices", body)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/invoices/11/payments", `{"amount":"500.005","method":"CASH","date":"2024-06-05T00:00:00Z"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	body = `{"period":"2024-06","runDate":"2024-06-28T00:00:00Z","gross":"1000","paye":"100.005","pension":"80","nhis":"0","nhf":"25","otherDeductions":"0","net":"794.995"}`
	w = suite.do(http.MethodPost, "/api/v1/payroll-runs", body)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.invoices.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything)
	suite.invoices.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.payroll.AssertNotCalled(suite.T(), "PostPayrollRun", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetInvoice_NotFound() {
	suite.invoices.On("GetInvoice", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/99", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestRecordPayment() {
	suite.invoices.On("RecordPayment", mock.Anything, int64(11),
		mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(500)) && req.Method == domain.MethodCash
		}),
		suite.userID,
	).Return(&domain.Invoice{InvoiceID: 11, PaidAmount: decimal.NewFromInt(500), TotalAmount: decimal.NewFromInt(1075), Status: domain.InvoicePartial}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/11/payments", `{"amount":"500","method":"CASH","date":"2024-06-05T00:00:00Z"}`)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.InvoiceResponse
	suite.decode(w, &resp)
	suite.Equal(domain.InvoicePartial, resp.Status)
}

func (suite *HandlerTestSuite) TestCancelInvoice_WithSettlementsConflicts() {
	suite.invoices.On("CancelInvoice", mock.Anything, int64(11), suite.userID).
		Return(nil, fmt.Errorf("%w: invoice has settlements", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/11/cancel", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestPostPayrollRun() {
	suite.payroll.On("PostPayrollRun", mock.Anything,
		mock.MatchedBy(func(req dto.PayrollRunRequest) bool { return req.Period == "2024-06" }),
		suite.userID,
	).Return(&domain.JournalEntry{Number: "PAY/2024/0001", AutoGenerated: true}, nil).Once()

	body := `{"period":"2024-06","runDate":"2024-06-28T00:00:00Z","gross":"1000","paye":"100","pension":"80","nhis":"0","nhf":"25","otherDeductions":"0","net":"795"}`
	w := suite.do(http.MethodPost, "/api/v1/payroll-runs", body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("PAY/2024/0001", resp.Number)
}
