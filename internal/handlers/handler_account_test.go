package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbook/ledger-service/internal/apperrors"
	"github.com/finbook/ledger-service/internal/core/domain"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
	"github.com/finbook/ledger-service/internal/dto"
	"github.com/finbook/ledger-service/internal/handlers"
	"github.com/finbook/ledger-service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, *string, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Account), nextToken, args.Error(2)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockPostingService) GetJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockPostingService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), nextToken, args.Error(2)
}
func (m *MockPostingService) ListEntriesByAccount(ctx context.Context, tenantID, accountID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, tenantID, accountID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), nextToken, args.Error(2)
}

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) GetBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (*domain.Balance, error) {
	args := m.Called(ctx, tenantID, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}
func (m *MockBalanceService) GetBalances(ctx context.Context, tenantID string, accountIDs []string, asOf *time.Time) ([]domain.Balance, error) {
	args := m.Called(ctx, tenantID, accountIDs, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

var _ portssvc.StatementSvcFacade = (*MockStatementService)(nil)

func (m *MockStatementService) GetStatement(ctx context.Context, tenantID, accountID string, startDate, endDate time.Time) (*domain.Statement, error) {
	args := m.Called(ctx, tenantID, accountID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockAccounts  *MockAccountService
	mockPosting   *MockPostingService
	mockBalances  *MockBalanceService
	mockStatement *MockStatementService
	jwtSecret     string
	tenantID      string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(tenantID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   tenantID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()

	suite.mockAccounts = new(MockAccountService)
	suite.mockPosting = new(MockPostingService)
	suite.mockBalances = new(MockBalanceService)
	suite.mockStatement = new(MockStatementService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account:   suite.mockAccounts,
		Posting:   suite.mockPosting,
		Balance:   suite.mockBalances,
		Statement: suite.mockStatement,
	})
}

func (suite *AccountHandlerTestSuite) doRequest(method, url string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.tenantID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{
		AccountCode:  "cash:operating",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		AccountCode:  "cash:operating",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		CreatedAt:    time.Now().UTC(),
	}

	suite.mockAccounts.On("CreateAccount", mock.Anything, suite.tenantID, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BadCurrencyRejectedByBinding() {
	reqBody := map[string]interface{}{
		"accountCode":  "cash",
		"accountType":  "ASSET",
		"currencyCode": "us dollars",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_NoToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccounts.On("GetAccountByID", mock.Anything, suite.tenantID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockBalances.AssertNotCalled(suite.T(), "GetBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_IncludesBalance() {
	account := &domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	balance := &domain.Balance{
		AccountID:    account.AccountID,
		Balance:      decimal.NewFromInt(125),
		CurrencyCode: "USD",
	}

	suite.mockAccounts.On("GetAccountByID", mock.Anything, suite.tenantID, account.AccountID).Return(account, nil).Once()
	suite.mockBalances.On("GetBalance", mock.Anything, suite.tenantID, account.AccountID, (*time.Time)(nil)).Return(balance, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+account.AccountID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Balance)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(125)))
}

func (suite *AccountHandlerTestSuite) TestPostTransaction_OverdraftMapsTo422() {
	reqBody := dto.PostTransactionRequest{
		Entries: []dto.EntryRequest{
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}

	suite.mockPosting.On("PostTransaction", mock.Anything, suite.tenantID, mock.AnythingOfType("dto.PostTransactionRequest")).
		Return(nil, fmt.Errorf("%w: account would have balance -50", apperrors.ErrOverdraft)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AccountHandlerTestSuite) TestPostTransaction_ConflictMapsTo409() {
	reqBody := dto.PostTransactionRequest{
		Entries: []dto.EntryRequest{
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(10), Direction: domain.Debit},
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(10), Direction: domain.Credit},
		},
	}

	suite.mockPosting.On("PostTransaction", mock.Anything, suite.tenantID, mock.AnythingOfType("dto.PostTransactionRequest")).
		Return(nil, fmt.Errorf("%w: idempotency key already used", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestPostTransaction_SingleEntryRejectedByBinding() {
	reqBody := dto.PostTransactionRequest{
		Entries: []dto.EntryRequest{
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(10), Direction: domain.Debit},
		},
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPosting.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetStatement_Success() {
	accountID := uuid.NewString()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	statement := &domain.Statement{
		AccountID:      accountID,
		CurrencyCode:   "USD",
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: decimal.NewFromInt(50),
		ClosingBalance: decimal.NewFromInt(125),
	}

	suite.mockStatement.On("GetStatement", mock.Anything, suite.tenantID, accountID, start, end).
		Return(statement, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID+"/statement?startDate=2025-06-01&endDate=2025-06-30", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StatementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ClosingBalance.Equal(decimal.NewFromInt(125)))
}

func (suite *AccountHandlerTestSuite) TestGetBalances_Success() {
	accountID := uuid.NewString()
	reqBody := dto.GetBalancesRequest{AccountIDs: []string{accountID}}
	balances := []domain.Balance{{AccountID: accountID, Balance: decimal.NewFromInt(10), CurrencyCode: "USD"}}

	suite.mockBalances.On("GetBalances", mock.Anything, suite.tenantID, []string{accountID}, (*time.Time)(nil)).
		Return(balances, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/balances/query", reqBody)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GetBalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Balances, 1)
	suite.Equal(accountID, resp.Balances[0].AccountID)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
