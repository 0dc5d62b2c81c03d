package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/core/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/FlynntKnapp/planit-mini/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAPITokenRepository is a mock type for the APITokenRepository interface
type MockAPITokenRepository struct {
	mock.Mock
}

func (m *MockAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIToken), args.Error(1)
}

func (m *MockAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIToken), args.Error(1)
}

func (m *MockAPITokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIToken), args.Error(1)
}

func (m *MockAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPITokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPITokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserService is a mock type for the UserSvcFacade interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetOrCreateUserByEmail(ctx context.Context, email, name string) (*domain.User, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}

func (m *MockUserService) AddUserToGroup(ctx context.Context, p authz.Principal, targetUserID, group string) (*domain.User, error) {
	args := m.Called(ctx, p, targetUserID, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) RemoveUserFromGroup(ctx context.Context, p authz.Principal, targetUserID, group string) (*domain.User, error) {
	args := m.Called(ctx, p, targetUserID, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type APITokenServiceTestSuite struct {
	suite.Suite
	mockTokenRepo *MockAPITokenRepository
	mockUserSvc   *MockUserService
	service       portssvc.APITokenSvc
}

func (suite *APITokenServiceTestSuite) SetupTest() {
	suite.mockTokenRepo = new(MockAPITokenRepository)
	suite.mockUserSvc = new(MockUserService)
	suite.service = services.NewAPITokenService(suite.mockTokenRepo, suite.mockUserSvc)
}

// --- Test Cases ---

func (suite *APITokenServiceTestSuite) TestCreateToken_StoresHashNotSecret() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockTokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.APIToken")).Return(nil).Once()

	plaintext, token, err := suite.service.CreateToken(ctx, userID, "ci-runner", nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(token)
	suite.True(strings.HasPrefix(plaintext, "plm_"))
	suite.Equal(utils.HashRefreshToken(plaintext), token.TokenHash)
	suite.NotEqual(plaintext, token.TokenHash)
	suite.Nil(token.ExpiresAt)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *APITokenServiceTestSuite) TestCreateToken_WithExpiry() {
	ctx := context.Background()
	expiresIn := 24 * time.Hour

	suite.mockTokenRepo.On("Create", ctx, mock.AnythingOfType("*domain.APIToken")).Return(nil).Once()

	_, token, err := suite.service.CreateToken(ctx, uuid.NewString(), "short-lived", &expiresIn)

	suite.Require().NoError(err)
	suite.Require().NotNil(token.ExpiresAt)
	suite.WithinDuration(time.Now().Add(expiresIn), *token.ExpiresAt, time.Second)
}

func (suite *APITokenServiceTestSuite) TestCreateToken_RequiresName() {
	_, _, err := suite.service.CreateToken(context.Background(), uuid.NewString(), "", nil)
	suite.Require().Error(err)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *APITokenServiceTestSuite) TestValidateToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	plaintext := "plm_sometoken"
	stored := &domain.APIToken{ID: uuid.NewString(), UserID: userID, TokenHash: utils.HashRefreshToken(plaintext)}
	user := &domain.User{UserID: userID, Username: "jamie"}

	suite.mockTokenRepo.On("FindByTokenHash", ctx, utils.HashRefreshToken(plaintext)).Return(stored, nil).Once()
	suite.mockTokenRepo.On("Update", ctx, mock.MatchedBy(func(t *domain.APIToken) bool {
		return t.LastUsedAt != nil
	})).Return(nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.ValidateToken(ctx, plaintext)

	suite.Require().NoError(err)
	suite.Equal(user, got)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *APITokenServiceTestSuite) TestValidateToken_ExpiredTokenAutoRevoked() {
	ctx := context.Background()
	plaintext := "plm_expired"
	past := time.Now().Add(-time.Hour)
	stored := &domain.APIToken{ID: uuid.NewString(), UserID: uuid.NewString(), TokenHash: utils.HashRefreshToken(plaintext), ExpiresAt: &past}

	suite.mockTokenRepo.On("FindByTokenHash", ctx, utils.HashRefreshToken(plaintext)).Return(stored, nil).Once()
	suite.mockTokenRepo.On("Delete", ctx, stored.ID).Return(nil).Once()

	got, err := suite.service.ValidateToken(ctx, plaintext)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.mockTokenRepo.AssertExpectations(suite.T())
	suite.mockUserSvc.AssertNotCalled(suite.T(), "GetUserByID")
}

func (suite *APITokenServiceTestSuite) TestRevokeToken_OtherUsersTokenLooksMissing() {
	ctx := context.Background()
	owner := uuid.NewString()
	caller := uuid.NewString()
	stored := &domain.APIToken{ID: uuid.NewString(), UserID: owner}

	suite.mockTokenRepo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()

	err := suite.service.RevokeToken(ctx, caller, stored.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "Delete")
}

func (suite *APITokenServiceTestSuite) TestRevokeAllTokens() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockTokenRepo.On("DeleteByUserID", ctx, userID).Return(nil).Once()

	suite.Require().NoError(suite.service.RevokeAllTokens(ctx, userID))
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *APITokenServiceTestSuite) TestPurgeExpired() {
	ctx := context.Background()

	suite.mockTokenRepo.On("DeleteExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	deleted, err := suite.service.PurgeExpired(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), deleted)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func TestAPITokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(APITokenServiceTestSuite))
}
