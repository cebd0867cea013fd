package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/ledger-service/internal/apperrors"
	"github.com/finbook/ledger-service/internal/core/domain"
	portssvc "github.com/finbook/ledger-service/internal/core/ports/services"
	"github.com/finbook/ledger-service/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type StatementServiceTestSuite struct {
	suite.Suite
	mockEntryRepo  *MockEntryRepository
	mockAccountSvc *MockAccountService
	service        portssvc.StatementSvcFacade
	tenantID       string
	account        *domain.Account
	start          time.Time
	end            time.Time
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewStatementService(suite.mockEntryRepo, suite.mockAccountSvc)

	suite.tenantID = uuid.NewString()
	suite.account = &domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	suite.start = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
}

func (suite *StatementServiceTestSuite) entry(day int, amount int64, direction domain.EntryDirection) domain.LedgerEntry {
	date := time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
	return domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		JournalID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		AccountID:     suite.account.AccountID,
		Amount:        decimal.NewFromInt(amount),
		Direction:     direction,
		CurrencyCode:  "USD",
		EffectiveDate: date,
		PostedAt:      date,
	}
}

// --- Test Cases ---

func (suite *StatementServiceTestSuite) TestGetStatement_RunningBalances() {
	ctx := context.Background()
	opening := decimal.NewFromInt(50)
	entries := []domain.LedgerEntry{
		suite.entry(3, 100, domain.Debit),
		suite.entry(10, 30, domain.Credit),
		suite.entry(20, 5, domain.Debit),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.tenantID, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockEntryRepo.On("SumEntriesByAccount", ctx, suite.tenantID, suite.account.AccountID, suite.start.AddDate(0, 0, -1)).
		Return(opening, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByAccountAndDateRange", ctx, suite.tenantID, suite.account.AccountID, suite.start, suite.end).
		Return(entries, nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.tenantID, suite.account.AccountID, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.True(statement.OpeningBalance.Equal(decimal.NewFromInt(50)))
	suite.Require().Len(statement.Lines, 3)
	suite.True(statement.Lines[0].RunningBalance.Equal(decimal.NewFromInt(150)), "got %s", statement.Lines[0].RunningBalance)
	suite.True(statement.Lines[1].RunningBalance.Equal(decimal.NewFromInt(120)), "got %s", statement.Lines[1].RunningBalance)
	suite.True(statement.Lines[2].RunningBalance.Equal(decimal.NewFromInt(125)), "got %s", statement.Lines[2].RunningBalance)

	// Closing is always the last running balance: opening + debits - credits.
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(125)))
	suite.Equal("USD", statement.CurrencyCode)
}

func (suite *StatementServiceTestSuite) TestGetStatement_EmptyPeriod() {
	ctx := context.Background()
	opening := decimal.NewFromInt(-20)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.tenantID, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockEntryRepo.On("SumEntriesByAccount", ctx, suite.tenantID, suite.account.AccountID, suite.start.AddDate(0, 0, -1)).
		Return(opening, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByAccountAndDateRange", ctx, suite.tenantID, suite.account.AccountID, suite.start, suite.end).
		Return([]domain.LedgerEntry{}, nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.tenantID, suite.account.AccountID, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.Empty(statement.Lines)
	// With no activity, closing equals opening.
	suite.True(statement.ClosingBalance.Equal(statement.OpeningBalance))
}

func (suite *StatementServiceTestSuite) TestGetStatement_EndBeforeStart() {
	ctx := context.Background()

	statement, err := suite.service.GetStatement(ctx, suite.tenantID, suite.account.AccountID, suite.end, suite.start)

	suite.Require().Error(err)
	suite.Nil(statement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StatementServiceTestSuite) TestGetStatement_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.tenantID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	statement, err := suite.service.GetStatement(ctx, suite.tenantID, accountID, suite.start, suite.end)

	suite.Require().Error(err)
	suite.Nil(statement)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StatementServiceTestSuite) TestGetStatement_SingleDayPeriod() {
	ctx := context.Background()
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	entries := []domain.LedgerEntry{suite.entry(15, 10, domain.Debit)}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.tenantID, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockEntryRepo.On("SumEntriesByAccount", ctx, suite.tenantID, suite.account.AccountID, day.AddDate(0, 0, -1)).
		Return(decimal.Zero, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByAccountAndDateRange", ctx, suite.tenantID, suite.account.AccountID, day, day).
		Return(entries, nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.tenantID, suite.account.AccountID, day, day)

	suite.Require().NoError(err)
	suite.Len(statement.Lines, 1)
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(10)))
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
