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

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/core/ledger"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/handlers"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

func (m *MockEntryService) CreateEntry(ctx context.Context, workplaceID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, workplaceID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, workplaceID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, workplaceID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockEntryService) ReverseEntry(ctx context.Context, workplaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

type EntryHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockEntryService *MockEntryService
	jwtSecret        string
	workplaceID      string
	userID           string
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockEntryService = new(MockEntryService)
	suite.workplaceID = uuid.NewString()
	suite.userID = uuid.NewString()

	v1 := suite.router.Group("/api/v1/workplaces/:workplace_id")
	handlers.RegisterEntryRoutes(v1, suite.mockEntryService)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *EntryHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finbooks-test",
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

func (suite *EntryHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EntryHandlerTestSuite) validRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date:        "2025-06-15",
		Description: "Cash sale",
		Lines: []dto.EntryLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	req := suite.validRequest()
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		WorkplaceID: suite.workplaceID,
		EntryDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Description: req.Description,
		Status:      domain.Posted,
	}

	suite.mockEntryService.On("CreateEntry", mock.Anything, suite.workplaceID, req, suite.userID).
		Return(entry, nil).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/workplaces/%s/entries", suite.workplaceID), req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal(domain.Posted, resp.Status)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_UnbalancedRejectedWithKind() {
	req := suite.validRequest()

	suite.mockEntryService.On("CreateEntry", mock.Anything, suite.workplaceID, req, suite.userID).
		Return(nil, &ledger.UnbalancedError{
			TotalDebit:  decimal.NewFromInt(100),
			TotalCredit: decimal.NewFromInt(99),
		}).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/workplaces/%s/entries", suite.workplaceID), req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("UNBALANCED", resp["kind"])
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_UnknownAccountRejectedWithKind() {
	req := suite.validRequest()

	suite.mockEntryService.On("CreateEntry", mock.Anything, suite.workplaceID, req, suite.userID).
		Return(nil, &ledger.UnknownAccountError{AccountID: req.Lines[0].AccountID}).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/workplaces/%s/entries", suite.workplaceID), req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("UNKNOWN_ACCOUNT", resp["kind"])
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_MissingDateFailsBinding() {
	req := suite.validRequest()
	req.Date = ""

	w := suite.postJSON(fmt.Sprintf("/api/v1/workplaces/%s/entries", suite.workplaceID), req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_NoToken() {
	req := suite.validRequest()
	payload, err := json.Marshal(req)
	suite.Require().NoError(err)

	httpReq := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/workplaces/%s/entries", suite.workplaceID), bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *EntryHandlerTestSuite) TestReverseEntry_Conflict() {
	entryID := uuid.NewString()

	suite.mockEntryService.On("ReverseEntry", mock.Anything, suite.workplaceID, entryID, suite.userID).
		Return(nil, fmt.Errorf("entry already reversed: %w", apperrors.ErrConflict)).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/workplaces/%s/entries/%s/reverse", suite.workplaceID, entryID), struct{}{})

	suite.Equal(http.StatusConflict, w.Code)
}

func TestEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
