package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/handlers"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string
	userID    string

	accounts    *MockAccountService
	journals    *MockJournalService
	balances    *MockBalanceService
	prepayments *MockPrepaymentService
	credit      *MockCreditService
	fiscalYears *MockFiscalYearService
	invoices    *MockInvoiceService
	payroll     *MockPayrollService
	reporting   *MockReportingService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.accounts = new(MockAccountService)
	suite.journals = new(MockJournalService)
	suite.balances = new(MockBalanceService)
	suite.prepayments = new(MockPrepaymentService)
	suite.credit = new(MockCreditService)
	suite.fiscalYears = new(MockFiscalYearService)
	suite.invoices = new(MockInvoiceService)
	suite.payroll = new(MockPayrollService)
	suite.reporting = new(MockReportingService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, ""))
	handlers.RegisterAPIRoutes(v1, &portssvc.ServiceContainer{
		Account:    suite.accounts,
		Journal:    suite.journals,
		Balance:    suite.balances,
		Prepayment: suite.prepayments,
		Credit:     suite.credit,
		FiscalYear: suite.fiscalYears,
		Invoice:    suite.invoices,
		Payroll:    suite.payroll,
		Reporting:  suite.reporting,
	})
}

func (suite *HandlerTestSuite) TearDownTest() {
	t := suite.T()
	suite.accounts.AssertExpectations(t)
	suite.journals.AssertExpectations(t)
	suite.balances.AssertExpectations(t)
	suite.prepayments.AssertExpectations(t)
	suite.credit.AssertExpectations(t)
	suite.fiscalYears.AssertExpectations(t)
	suite.invoices.AssertExpectations(t)
	suite.payroll.AssertExpectations(t)
	suite.reporting.AssertExpectations(t)
}

func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends an authenticated request. body is marshalled to JSON unless it is nil or a string.
func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		buf = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Accept", "application/json")
	if buf.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, into any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), into), "Failed to unmarshal response body: %s", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "ListAccounts")
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
