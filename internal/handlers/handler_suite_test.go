package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/handlers"
	"github.com/shokoko2010/Elhamd-sub014/internal/middleware"
	"github.com/shokoko2010/Elhamd-sub014/internal/platform/config"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testUserID    = "3f1c9a52-8d6e-4c1b-9f0a-5b7e2d4c6a81"
)

// handlerSuite serves the full route table against mocked services.
type handlerSuite struct {
	suite.Suite
	router       *gin.Engine
	accountSvc   *MockAccountService
	journalSvc   *MockJournalService
	payrollSvc   *MockPayrollService
	reportingSvc *MockReportingService
}

func (suite *handlerSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *handlerSuite) SetupTest() {
	suite.accountSvc = new(MockAccountService)
	suite.journalSvc = new(MockJournalService)
	suite.payrollSvc = new(MockPayrollService)
	suite.reportingSvc = new(MockReportingService)

	suite.router = gin.New()
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account:   suite.accountSvc,
		Journal:   suite.journalSvc,
		Payroll:   suite.payrollSvc,
		Reporting: suite.reportingSvc,
	})
}

func (suite *handlerSuite) TearDownTest() {
	suite.accountSvc.AssertExpectations(suite.T())
	suite.journalSvc.AssertExpectations(suite.T())
	suite.payrollSvc.AssertExpectations(suite.T())
	suite.reportingSvc.AssertExpectations(suite.T())
}

// generateTestToken creates a signed JWT for userID carrying roles.
func (suite *handlerSuite) generateTestToken(userID string, roles ...string) string {
	claims := middleware.Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ledger-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do serves one request authenticated as testUserID with the given roles.
func (suite *handlerSuite) do(method, url string, body any, roles ...string) *httptest.ResponseRecorder {
	return suite.doWithHeaders(method, url, body, nil, roles...)
}

func (suite *handlerSuite) doWithHeaders(method, url string, body any, headers map[string]string, roles ...string) *httptest.ResponseRecorder {
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
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID, roles...))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *handlerSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
