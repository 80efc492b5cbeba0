package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
	"github.com/shokoko2010/Elhamd-sub014/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountHandlerTestSuite struct {
	handlerSuite
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

func sampleAccount(code string, accountType domain.AccountType) *domain.Account {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Account{
		AccountID:     uuid.NewString(),
		Code:          code,
		Name:          "Account " + code,
		AccountType:   accountType,
		NormalBalance: accountType.NormalBalance(),
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(testUserID, now),
	}
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	created := sampleAccount("1000", domain.Asset)
	suite.accountSvc.On("CreateAccount",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Code == "1000" && req.AccountType == domain.Asset
		}),
		testUserID,
	).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":        "1000",
		"name":        "Cash",
		"accountType": "ASSET",
	}, middleware.RoleLedgerAdmin)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal(domain.NormalDebit, resp.NormalBalance)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_RequiresAdminRole() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":        "1000",
		"name":        "Cash",
		"accountType": "ASSET",
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.accountSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BindingErrors() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"code": "1000", "accountType": "ASSET"}},
		{"bad type", map[string]any{"code": "1000", "name": "Cash", "accountType": "GOODWILL"}},
		{"bad code", map[string]any{"code": "10 00", "name": "Cash", "accountType": "ASSET"}},
		{"bad normal balance", map[string]any{"code": "1000", "name": "Cash", "accountType": "ASSET", "normalBalance": "SIDEWAYS"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounts", tt.body, middleware.RoleLedgerAdmin)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	suite.accountSvc.On("CreateAccount", mock.Anything, mock.Anything, testUserID).
		Return(nil, fmt.Errorf("%w: 1000", domain.ErrDuplicateCode)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":        "1000",
		"name":        "Cash",
		"accountType": "ASSET",
	}, middleware.RoleLedgerAdmin)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount() {
	acc := sampleAccount("4000", domain.Revenue)
	suite.accountSvc.On("LookupAccount", mock.Anything, "4000").Return(acc, nil).Once()
	suite.accountSvc.On("LookupAccount", mock.Anything, "9999").Return(nil, domain.ErrAccountNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/4000", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(acc.AccountID, resp.AccountID)

	w = suite.do(http.MethodGet, "/api/v1/accounts/9999", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts() {
	expected := dto.ToListAccountsResponse([]domain.Account{*sampleAccount("1000", domain.Asset)}, nil)
	suite.accountSvc.On("ListAccounts", mock.Anything, mock.MatchedBy(func(p dto.ListAccountsParams) bool {
		return p.Limit == 10 && p.ActiveOnly && p.AccountType != nil && *p.AccountType == domain.Asset
	})).Return(&expected, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?limit=10&activeOnly=true&type=ASSET", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListAccountsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Accounts, 1)

	w = suite.do(http.MethodGet, "/api/v1/accounts?limit=0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount() {
	acc := sampleAccount("1010", domain.Asset)
	acc.Name = "Operating bank"
	suite.accountSvc.On("UpdateAccount", mock.Anything, acc.AccountID, mock.MatchedBy(func(req dto.UpdateAccountRequest) bool {
		return req.Name != nil && *req.Name == "Operating bank"
	}), testUserID).Return(acc, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/accounts/"+acc.AccountID, map[string]any{"name": "Operating bank"}, middleware.RoleLedgerAdmin)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodPatch, "/api/v1/accounts/"+acc.AccountID, map[string]any{"name": "x"})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount() {
	acc := sampleAccount("1900", domain.Asset)
	acc.IsActive = false
	suite.accountSvc.On("DeactivateAccount", mock.Anything, acc.AccountID, testUserID).Return(acc, nil).Once()
	suite.accountSvc.On("DeactivateAccount", mock.Anything, "1000", testUserID).
		Return(nil, fmt.Errorf("%w: 1000 has balance 5.00", domain.ErrAccountInUse)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/"+acc.AccountID+"/deactivate", nil, middleware.RoleLedgerAdmin)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.False(resp.IsActive)

	w = suite.do(http.MethodPost, "/api/v1/accounts/1000/deactivate", nil, middleware.RoleLedgerAdmin)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance() {
	balance := domain.NewAccountBalance(*sampleAccount("1000", domain.Asset), domain.AccountTotals{Debits: 75050, Credits: 25000})
	suite.reportingSvc.On("Balance", mock.Anything, "1000").Return(&balance, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/1000/balance", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalanceResponse
	suite.decode(w, &resp)
	suite.True(decimal.RequireFromString("500.50").Equal(resp.Balance), resp.Balance.String())
}

func (suite *AccountHandlerTestSuite) TestUnauthenticated() {
	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := newRecorder()
		suite.router.ServeHTTP(w, req)
		suite.Equal(http.StatusUnauthorized, w.Code, header)
	}
}

func (suite *AccountHandlerTestSuite) TestHealthIsPublic() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := newRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "dealership-ledger")
}
