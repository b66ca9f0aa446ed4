package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice_app/internal/apperrors"
	"github.com/SscSPs/bank_backoffice_app/internal/core/domain"
	"github.com/SscSPs/bank_backoffice_app/internal/dto"
	"github.com/SscSPs/bank_backoffice_app/internal/handlers"
	"github.com/SscSPs/bank_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mocks ---

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockAccountingService struct {
	mock.Mock
}

func (m *MockAccountingService) GetAccountByID(ctx context.Context, accountID int64) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountingService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountingService) ListAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.BankAccount, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockAccountingService) CreateAccount(ctx context.Context, customerID int64, currency string) (*domain.BankAccount, error) {
	args := m.Called(ctx, customerID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountingService) ChangeStatus(ctx context.Context, accountID int64, status domain.AccountStatus) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountingService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	return m.Called(ctx, accountNumber, amount).Error(0)
}

func (m *MockAccountingService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	return m.Called(ctx, accountNumber, amount).Error(0)
}

func (m *MockAccountingService) Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) error {
	return m.Called(ctx, fromAccount, toAccount, amount).Error(0)
}

func (m *MockAccountingService) GetTransactions(ctx context.Context, accountNumber string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountNumber, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

// --- Test Suite Setup ---

type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	customerSvc *MockCustomerService
	accountSvc  *MockAccountingService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()

	suite.customerSvc = new(MockCustomerService)
	suite.accountSvc = new(MockAccountingService)

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(v1, suite.customerSvc)
	handlers.RegisterAccountRoutes(v1, suite.accountSvc)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.customerSvc.AssertExpectations(suite.T())
	suite.accountSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleAccount() *domain.BankAccount {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	acc := &domain.BankAccount{
		AccountID:     11,
		AccountNumber: "ACC-1",
		CustomerID:    3,
		Balance:       decimal.RequireFromString("25.50"),
		Currency:      "EUR",
		Status:        domain.StatusActive,
	}
	acc.CreatedAt = now
	acc.LastUpdatedAt = now
	return acc
}

// --- Customer Tests ---

func (suite *HandlerTestSuite) TestCreateCustomer_Success() {
	req := dto.CreateCustomerRequest{FullName: "Ana Diaz", Email: "ana@x.com"}
	suite.customerSvc.On("CreateCustomer", mock.Anything, req).
		Return(&domain.Customer{CustomerID: 1, FullName: "Ana Diaz", Email: "ana@x.com"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.CustomerID)
	suite.Equal("ana@x.com", resp.Email)
}

func (suite *HandlerTestSuite) TestCreateCustomer_BadRequest() {
	w := suite.do(http.MethodPost, "/api/v1/customers", `{"fullName": "Ana"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.errorBody(w)
	suite.Equal("bad_request", resp.Code)
	suite.Contains(resp.Error, "Invalid request format")
}

func (suite *HandlerTestSuite) TestCreateCustomer_Duplicate() {
	req := dto.CreateCustomerRequest{FullName: "Ana", Email: "ana@x.com"}
	suite.customerSvc.On("CreateCustomer", mock.Anything, req).
		Return(nil, apperrors.NewDuplicate("customer with email %s already exists", "ana@x.com")).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("duplicate", suite.errorBody(w).Code)
}

func (suite *HandlerTestSuite) TestGetCustomer() {
	suite.customerSvc.On("GetCustomerByID", mock.Anything, int64(5)).
		Return(&domain.Customer{CustomerID: 5, FullName: "Bo", Email: "bo@x.com"}, nil).Once()
	suite.customerSvc.On("GetCustomerByID", mock.Anything, int64(6)).
		Return(nil, fmt.Errorf("customer 6: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/5", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/customers/6", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("not_found", suite.errorBody(w).Code)

	w = suite.do(http.MethodGet, "/api/v1/customers/abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListCustomers() {
	suite.customerSvc.On("ListCustomers", mock.Anything).
		Return([]domain.Customer{{CustomerID: 1}, {CustomerID: 2}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCustomersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Customers, 2)
}

// --- Account Tests ---

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	suite.accountSvc.On("CreateAccount", mock.Anything, int64(3), "EUR").Return(sampleAccount(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"customerId": 3, "currency": "EUR"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ACC-1", resp.AccountNumber)
	suite.True(decimal.RequireFromString("25.50").Equal(resp.Balance))
	suite.Equal(domain.StatusActive, resp.Status)
}

func (suite *HandlerTestSuite) TestCreateAccount_UnknownCustomer() {
	suite.accountSvc.On("CreateAccount", mock.Anything, int64(99), "EUR").
		Return(nil, fmt.Errorf("customer 99: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"customerId": 99, "currency": "EUR"}`)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAccount_FreeFormCurrency() {
	acc := sampleAccount()
	acc.Currency = "USDT"
	suite.accountSvc.On("CreateAccount", mock.Anything, int64(3), "USDT").Return(acc, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"customerId": 3, "currency": "USDT"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USDT", resp.Currency)
}

func (suite *HandlerTestSuite) TestCreateAccount_MissingCurrency() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"customerId": 3}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("bad_request", suite.errorBody(w).Code)
}

func (suite *HandlerTestSuite) TestGetAccountAndListByCustomer() {
	suite.accountSvc.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(sampleAccount(), nil).Once()
	suite.accountSvc.On("ListAccountsByCustomer", mock.Anything, int64(3)).
		Return([]domain.BankAccount{*sampleAccount()}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/ACC-1", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/accounts/by-customer/3", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Accounts, 1)
	suite.Equal(int64(11), resp.Accounts[0].AccountID)
}

func (suite *HandlerTestSuite) TestDeposit() {
	amount := decimal.RequireFromString("100.50")
	suite.accountSvc.On("Deposit", mock.Anything, "ACC-1", mock.MatchedBy(amount.Equal)).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/deposit", `{"accountNumber": "ACC-1", "amount": "100.50"}`)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())
}

func (suite *HandlerTestSuite) TestDeposit_NonPositiveAmount() {
	for _, body := range []string{
		`{"accountNumber": "ACC-1", "amount": 0}`,
		`{"accountNumber": "ACC-1", "amount": "-5"}`,
		`{"accountNumber": "ACC-1"}`,
	} {
		w := suite.do(http.MethodPost, "/api/v1/accounts/deposit", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.accountSvc.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestWithdraw_BusinessRules() {
	suite.accountSvc.On("Withdraw", mock.Anything, "ACC-1", mock.Anything).
		Return(fmt.Errorf("%w: balance 10 below 20", apperrors.ErrInsufficientBalance)).Once()
	suite.accountSvc.On("Withdraw", mock.Anything, "ACC-2", mock.Anything).
		Return(fmt.Errorf("%w: account ACC-2 is INACTIVE", apperrors.ErrInactiveAccount)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/withdraw", `{"accountNumber": "ACC-1", "amount": 20}`)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("business_rule_violation", suite.errorBody(w).Code)

	w = suite.do(http.MethodPost, "/api/v1/accounts/withdraw", `{"accountNumber": "ACC-2", "amount": 20}`)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestTransfer() {
	suite.accountSvc.On("Transfer", mock.Anything, "ACC-1", "ACC-2", mock.Anything).Return(nil).Once()
	suite.accountSvc.On("Transfer", mock.Anything, "ACC-1", "ACC-1", mock.Anything).
		Return(fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/transfer", `{"fromAccount": "ACC-1", "toAccount": "ACC-2", "amount": 5}`)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/accounts/transfer", `{"fromAccount": "ACC-1", "toAccount": "ACC-1", "amount": 5}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("validation_error", suite.errorBody(w).Code)
}

func (suite *HandlerTestSuite) TestTransfer_InternalError() {
	suite.accountSvc.On("Transfer", mock.Anything, "ACC-1", "ACC-2", mock.Anything).Return(assert.AnError).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/transfer", `{"fromAccount": "ACC-1", "toAccount": "ACC-2", "amount": 5}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
	resp := suite.errorBody(w)
	suite.Equal("Failed to transfer", resp.Error)
	suite.NotContains(resp.Error, assert.AnError.Error())
}

func (suite *HandlerTestSuite) TestListTransactions() {
	next := "tok-2"
	entries := []domain.Transaction{
		{TransactionID: 1, AccountID: 11, Type: domain.Deposit, Amount: decimal.NewFromInt(10), Description: "Deposit"},
	}
	suite.accountSvc.On("GetTransactions", mock.Anything, "ACC-1", 1, (*string)(nil)).Return(entries, &next, nil).Once()
	suite.accountSvc.On("GetTransactions", mock.Anything, "ACC-1", 1, mock.MatchedBy(func(tok *string) bool {
		return tok != nil && *tok == next
	})).Return([]domain.Transaction{}, nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/ACC-1/transactions?limit=1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/accounts/ACC-1/transactions?limit=1&nextToken=tok-2", nil)
	suite.Equal(http.StatusOK, w.Code)
	resp = dto.ListTransactionsResponse{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Transactions)
	suite.Nil(resp.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/accounts/ACC-1/transactions?limit=1000", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestChangeStatus() {
	closed := sampleAccount()
	closed.Status = domain.StatusClosed
	suite.accountSvc.On("ChangeStatus", mock.Anything, int64(11), domain.StatusClosed).Return(closed, nil).Once()
	suite.accountSvc.On("ChangeStatus", mock.Anything, int64(11), domain.StatusActive).
		Return(nil, fmt.Errorf("%w: cannot move account ACC-1 from CLOSED to ACTIVE", apperrors.ErrInvalidTransition)).Once()

	w := suite.do(http.MethodPatch, "/api/v1/accounts/11/status", `{"status": "CLOSED"}`)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusClosed, resp.Status)

	w = suite.do(http.MethodPatch, "/api/v1/accounts/11/status", `{"status": "ACTIVE"}`)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.do(http.MethodPatch, "/api/v1/accounts/11/status", `{"status": "FROZEN"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPatch, "/api/v1/accounts/ACC-1/status", `{"status": "CLOSED"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
