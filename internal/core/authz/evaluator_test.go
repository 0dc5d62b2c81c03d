package authz_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockMembershipLookup is a mock type for the MembershipLookup interface
type MockMembershipLookup struct {
	mock.Mock
}

func (m *MockMembershipLookup) HasWorkspaceRole(ctx context.Context, userID, workspaceID string, roles ...domain.MembershipRole) (bool, error) {
	args := m.Called(ctx, userID, workspaceID, roles)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite Setup ---

type EvaluatorTestSuite struct {
	suite.Suite
	mockLookup *MockMembershipLookup
	evaluator  *authz.Evaluator
}

func (suite *EvaluatorTestSuite) SetupTest() {
	suite.mockLookup = new(MockMembershipLookup)
	suite.evaluator = authz.NewEvaluator(suite.mockLookup, nil)
}

func member(userID string) authz.Principal {
	return authz.Principal{UserID: userID, Authenticated: true}
}

// --- MayProceed ---

func (suite *EvaluatorTestSuite) TestMayProceed_DeniesAnonymous() {
	suite.False(suite.evaluator.MayProceed(authz.Anonymous, http.MethodGet))
	suite.False(suite.evaluator.MayProceed(authz.Anonymous, http.MethodPost))
}

func (suite *EvaluatorTestSuite) TestMayProceed_AllowsAuthenticatedReads() {
	p := member(uuid.NewString())
	suite.True(suite.evaluator.MayProceed(p, http.MethodGet))
	suite.True(suite.evaluator.MayProceed(p, http.MethodHead))
	suite.True(suite.evaluator.MayProceed(p, http.MethodOptions))
}

func (suite *EvaluatorTestSuite) TestMayProceed_DefersWritesToObjectCheck() {
	p := member(uuid.NewString())
	suite.True(suite.evaluator.MayProceed(p, http.MethodPost))
	suite.True(suite.evaluator.MayProceed(p, http.MethodDelete))
}

// --- MayActOn ---

func (suite *EvaluatorTestSuite) TestMayActOn_DeniesAnonymous() {
	asset := domain.Asset{AssetID: uuid.NewString(), WorkspaceID: uuid.NewString()}
	suite.False(suite.evaluator.MayActOn(context.Background(), authz.Anonymous, http.MethodGet, asset))
}

func (suite *EvaluatorTestSuite) TestMayActOn_AllowsReadsWithoutLookup() {
	asset := domain.Asset{AssetID: uuid.NewString(), WorkspaceID: uuid.NewString()}

	allowed := suite.evaluator.MayActOn(context.Background(), member(uuid.NewString()), http.MethodGet, asset)

	suite.True(allowed)
	suite.mockLookup.AssertNotCalled(suite.T(), "HasWorkspaceRole")
}

func (suite *EvaluatorTestSuite) TestMayActOn_StaffWritesAnywhere() {
	p := authz.Principal{UserID: uuid.NewString(), Authenticated: true, IsStaff: true}
	asset := domain.Asset{AssetID: uuid.NewString(), WorkspaceID: uuid.NewString()}

	allowed := suite.evaluator.MayActOn(context.Background(), p, http.MethodDelete, asset)

	suite.True(allowed)
	suite.mockLookup.AssertNotCalled(suite.T(), "HasWorkspaceRole")
}

func (suite *EvaluatorTestSuite) TestMayActOn_MaintenanceManagerWritesAnywhere() {
	p := authz.Principal{
		UserID:        uuid.NewString(),
		Authenticated: true,
		Capabilities:  authz.Capabilities{MaintenanceManager: true},
	}
	asset := domain.Asset{AssetID: uuid.NewString(), WorkspaceID: uuid.NewString()}

	suite.True(suite.evaluator.MayActOn(context.Background(), p, http.MethodPut, asset))
}

func (suite *EvaluatorTestSuite) TestMayActOn_ManagerMembershipAllowsWrite() {
	ctx := context.Background()
	p := member(uuid.NewString())
	workspaceID := uuid.NewString()
	asset := domain.Asset{AssetID: uuid.NewString(), WorkspaceID: workspaceID}

	suite.mockLookup.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, domain.WriteRoles).Return(true, nil).Once()

	suite.True(suite.evaluator.MayActOn(ctx, p, http.MethodPost, asset))
	suite.mockLookup.AssertExpectations(suite.T())
}

func (suite *EvaluatorTestSuite) TestMayActOn_ViewerMembershipDeniesWrite() {
	ctx := context.Background()
	p := member(uuid.NewString())
	workspaceID := uuid.NewString()
	asset := domain.Asset{AssetID: uuid.NewString(), WorkspaceID: workspaceID}

	suite.mockLookup.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, domain.WriteRoles).Return(false, nil).Once()

	suite.False(suite.evaluator.MayActOn(ctx, p, http.MethodPost, asset))
	suite.mockLookup.AssertExpectations(suite.T())
}

func (suite *EvaluatorTestSuite) TestMayActOn_UnresolvableWorkspaceDeniesNonPrivileged() {
	// Work order with no workspace, asset, or task reference.
	order := domain.WorkOrder{WorkOrderID: uuid.NewString()}

	allowed := suite.evaluator.MayActOn(context.Background(), member(uuid.NewString()), http.MethodPost, order)

	suite.False(allowed)
	suite.mockLookup.AssertNotCalled(suite.T(), "HasWorkspaceRole")
}

func (suite *EvaluatorTestSuite) TestMayActOn_NilObjectDeniesNonPrivileged() {
	suite.False(suite.evaluator.MayActOn(context.Background(), member(uuid.NewString()), http.MethodPost, nil))
}

func (suite *EvaluatorTestSuite) TestMayActOn_LookupErrorDegradesToDeny() {
	ctx := context.Background()
	p := member(uuid.NewString())
	workspaceID := uuid.NewString()
	asset := domain.Asset{AssetID: uuid.NewString(), WorkspaceID: workspaceID}

	suite.mockLookup.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, domain.WriteRoles).Return(false, errors.New("db down")).Once()

	suite.False(suite.evaluator.MayActOn(ctx, p, http.MethodPost, asset))
	suite.mockLookup.AssertExpectations(suite.T())
}

func (suite *EvaluatorTestSuite) TestMayActOn_DerivedWorkspaceViaAsset() {
	ctx := context.Background()
	p := member(uuid.NewString())
	workspaceID := uuid.NewString()
	order := domain.WorkOrder{
		WorkOrderID: uuid.NewString(),
		Asset:       &domain.Asset{AssetID: uuid.NewString(), WorkspaceID: workspaceID},
	}

	suite.mockLookup.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, domain.WriteRoles).Return(true, nil).Once()

	suite.True(suite.evaluator.MayActOn(ctx, p, http.MethodPut, order))
	suite.mockLookup.AssertExpectations(suite.T())
}

func TestEvaluatorTestSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}

func TestSafeMethod(t *testing.T) {
	assert.True(t, authz.SafeMethod(http.MethodGet))
	assert.True(t, authz.SafeMethod(http.MethodHead))
	assert.True(t, authz.SafeMethod(http.MethodOptions))
	assert.False(t, authz.SafeMethod(http.MethodPost))
	assert.False(t, authz.SafeMethod(http.MethodPut))
	assert.False(t, authz.SafeMethod(http.MethodPatch))
	assert.False(t, authz.SafeMethod(http.MethodDelete))
}
