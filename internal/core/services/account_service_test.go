package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/finbook/ledger-service/internal/apperrors"
	"github.com/finbook/ledger-service/internal/core/domain"
	portsrepo "github.com/finbook/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
	"github.com/finbook/ledger-service/internal/core/services"
	"github.com/finbook/ledger-service/internal/dto"
	"github.com/finbook/ledger-service/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, filter portsrepo.ListAccountsFilter, limit int, afterID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, filter, limit, afterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	tenantID        string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.tenantID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "  cash:operating  ",
		AccountType:  domain.Asset,
		CurrencyCode: "usd",
		Metadata:     map[string]string{"team": "treasury"},
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.tenantID, account.TenantID)
	suite.Equal("cash:operating", account.AccountCode)
	suite.Equal("USD", account.CurrencyCode)
	suite.Equal("treasury", account.Metadata["team"])
	suite.False(account.CreatedAt.IsZero())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "cash",
		AccountType:  domain.Asset,
		CurrencyCode: "US",
	}

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "cash",
		AccountType:  domain.AccountType("SAVINGS"),
		CurrencyCode: "USD",
	}

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_EmptyCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "   ",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	dupErr := fmt.Errorf("%w: account code cash already exists for tenant", apperrors.ErrConflict)

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(dupErr).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AccountServiceTestSuite) TestListAccounts_PaginatesWithToken() {
	ctx := context.Background()
	accounts := make([]domain.Account, 3)
	for i := range accounts {
		accounts[i] = domain.Account{AccountID: fmt.Sprintf("acc-%02d", i), TenantID: suite.tenantID}
	}

	// limit=2 fetches 3 rows; the extra row signals another page.
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, portsrepo.ListAccountsFilter{}, 3, "").
		Return(accounts, nil).Once()

	page, nextToken, err := suite.service.ListAccounts(ctx, suite.tenantID, dto.ListAccountsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(page, 2)
	suite.Require().NotNil(nextToken)

	decoded, err := pagination.DecodeIDToken(*nextToken)
	suite.Require().NoError(err)
	suite.Equal("acc-01", decoded)
}

func (suite *AccountServiceTestSuite) TestListAccounts_LastPageHasNoToken() {
	ctx := context.Background()
	accounts := []domain.Account{{AccountID: "acc-00", TenantID: suite.tenantID}}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, portsrepo.ListAccountsFilter{}, 3, "").
		Return(accounts, nil).Once()

	page, nextToken, err := suite.service.ListAccounts(ctx, suite.tenantID, dto.ListAccountsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(page, 1)
	suite.Nil(nextToken)
}

func (suite *AccountServiceTestSuite) TestListAccounts_InvalidToken() {
	ctx := context.Background()
	badToken := "not-base64!!"

	page, nextToken, err := suite.service.ListAccounts(ctx, suite.tenantID, dto.ListAccountsParams{NextToken: &badToken})

	suite.Require().Error(err)
	suite.Nil(page)
	suite.Nil(nextToken)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_InvalidTypeFilter() {
	ctx := context.Background()
	badType := "SAVINGS"

	_, _, err := suite.service.ListAccounts(ctx, suite.tenantID, dto.ListAccountsParams{AccountType: &badType})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
