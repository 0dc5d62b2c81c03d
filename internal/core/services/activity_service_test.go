package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/core/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockActivityRepository is a mock type for the ActivityRepositoryFacade interface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.ActivityInstance, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityInstance), args.Error(1)
}

func (m *MockActivityRepository) ListActivities(ctx context.Context, filter portsrepo.ActivityListFilter) ([]domain.ActivityInstance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityInstance), args.Error(1)
}

func (m *MockActivityRepository) SaveActivity(ctx context.Context, activity domain.ActivityInstance) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) UpdateActivity(ctx context.Context, activity domain.ActivityInstance) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) DeleteActivity(ctx context.Context, activityID string) error {
	args := m.Called(ctx, activityID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ActivityServiceTestSuite struct {
	suite.Suite
	mockActivityRepo  *MockActivityRepository
	mockAssetRepo     *MockAssetRepository
	mockWorkOrderRepo *MockWorkOrderRepository
	mockWorkspaceRepo *MockWorkspaceRepository
	service           portssvc.ActivitySvcFacade
	ctx               context.Context
}

func (suite *ActivityServiceTestSuite) SetupTest() {
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockWorkOrderRepo = new(MockWorkOrderRepository)
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	evaluator := authz.NewEvaluator(suite.mockWorkspaceRepo, nil)
	suite.service = services.NewActivityService(suite.mockActivityRepo, suite.mockAssetRepo, suite.mockWorkOrderRepo, suite.mockWorkspaceRepo, evaluator)
	suite.ctx = context.Background()
}

func feedActivity(activityID, workspaceID string) domain.ActivityInstance {
	return domain.ActivityInstance{
		ActivityID:  activityID,
		WorkspaceID: workspaceID,
		AssetID:     "asset1",
		Kind:        domain.ActivityChecked,
		OccurredAt:  time.Now(),
	}
}

func createActivityRequest(workspaceID, assetID string) dto.CreateActivityRequest {
	return dto.CreateActivityRequest{
		WorkspaceID: workspaceID,
		AssetID:     assetID,
		Kind:        domain.ActivityChecked,
		Note:        "patch tuesday sweep",
		OccurredAt:  time.Now(),
	}
}

// --- GetActivity ---

func (suite *ActivityServiceTestSuite) TestGetActivity_MemberSees() {
	p := memberPrincipal()
	activity := feedActivity("act1", "w1")
	suite.mockActivityRepo.On("FindActivityByID", suite.ctx, "act1").Return(&activity, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", suite.ctx, p.UserID, "w1",
		[]domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(true, nil).Once()

	got, err := suite.service.GetActivity(suite.ctx, p, "act1")

	suite.NoError(err)
	suite.Equal("act1", got.ActivityID)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestGetActivity_NonMemberGetsNotFound() {
	p := memberPrincipal()
	activity := feedActivity("act1", "w-other")
	suite.mockActivityRepo.On("FindActivityByID", suite.ctx, "act1").Return(&activity, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", suite.ctx, p.UserID, "w-other",
		[]domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(false, nil).Once()

	_, err := suite.service.GetActivity(suite.ctx, p, "act1")

	suite.Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ActivityFeed ---

func (suite *ActivityServiceTestSuite) TestActivityFeed_ScopedToMemberships() {
	p := memberPrincipal()
	memberships := []domain.Membership{
		{MembershipID: "m1", UserID: p.UserID, WorkspaceID: "w1", Role: domain.RoleViewer},
	}
	recent := []domain.ActivityInstance{
		feedActivity("act1", "w1"),
		feedActivity("act2", "w2"),
		feedActivity("act3", "w1"),
	}
	suite.mockWorkspaceRepo.On("ListUserMemberships", suite.ctx, p.UserID).Return(memberships, nil).Once()
	suite.mockActivityRepo.On("ListActivities", suite.ctx, mock.MatchedBy(func(f portsrepo.ActivityListFilter) bool {
		return f.VisibleToUserID == "" && f.Limit == 200
	})).Return(recent, nil).Once()

	feed, err := suite.service.ActivityFeed(suite.ctx, p, 20)

	suite.NoError(err)
	suite.Len(feed, 2)
	suite.Equal("act1", feed[0].ActivityID)
	suite.Equal("act3", feed[1].ActivityID)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestActivityFeed_StaffSkipsMembershipLookup() {
	recent := []domain.ActivityInstance{
		feedActivity("act1", "w1"),
		feedActivity("act2", "w2"),
	}
	suite.mockActivityRepo.On("ListActivities", suite.ctx, mock.MatchedBy(func(f portsrepo.ActivityListFilter) bool {
		return f.Limit == 20
	})).Return(recent, nil).Once()

	feed, err := suite.service.ActivityFeed(suite.ctx, staffPrincipal(), 20)

	suite.NoError(err)
	suite.Len(feed, 2)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "ListUserMemberships", mock.Anything, mock.Anything)
}

func (suite *ActivityServiceTestSuite) TestActivityFeed_NoMembershipsShortCircuits() {
	p := memberPrincipal()
	suite.mockWorkspaceRepo.On("ListUserMemberships", suite.ctx, p.UserID).Return([]domain.Membership{}, nil).Once()

	feed, err := suite.service.ActivityFeed(suite.ctx, p, 20)

	suite.NoError(err)
	suite.Empty(feed)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "ListActivities", mock.Anything, mock.Anything)
}

func (suite *ActivityServiceTestSuite) TestActivityFeed_TruncatesToLimit() {
	p := memberPrincipal()
	memberships := []domain.Membership{
		{MembershipID: "m1", UserID: p.UserID, WorkspaceID: "w1", Role: domain.RoleManager},
	}
	recent := []domain.ActivityInstance{
		feedActivity("act1", "w1"),
		feedActivity("act2", "w1"),
		feedActivity("act3", "w1"),
	}
	suite.mockWorkspaceRepo.On("ListUserMemberships", suite.ctx, p.UserID).Return(memberships, nil).Once()
	suite.mockActivityRepo.On("ListActivities", suite.ctx, mock.Anything).Return(recent, nil).Once()

	feed, err := suite.service.ActivityFeed(suite.ctx, p, 2)

	suite.NoError(err)
	suite.Len(feed, 2)
	suite.Equal("act2", feed[1].ActivityID)
}

func (suite *ActivityServiceTestSuite) TestActivityFeed_OversizedLimitClampsToWindow() {
	suite.mockActivityRepo.On("ListActivities", suite.ctx, mock.MatchedBy(func(f portsrepo.ActivityListFilter) bool {
		return f.Limit == 200
	})).Return([]domain.ActivityInstance{feedActivity("act1", "w1")}, nil).Once()

	feed, err := suite.service.ActivityFeed(suite.ctx, staffPrincipal(), 500)

	suite.NoError(err)
	suite.Len(feed, 1)
	suite.mockActivityRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestActivityFeed_AnonymousDenied() {
	_, err := suite.service.ActivityFeed(suite.ctx, authz.Anonymous, 20)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- CreateActivity ---

func (suite *ActivityServiceTestSuite) TestCreateActivity_AssetWorkspaceMismatch() {
	asset := &domain.Asset{AssetID: "asset1", WorkspaceID: "w-other"}
	suite.mockAssetRepo.On("FindAssetByID", suite.ctx, "asset1").Return(asset, nil).Once()

	req := createActivityRequest("w1", "asset1")
	_, err := suite.service.CreateActivity(suite.ctx, staffPrincipal(), req)

	suite.Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "SaveActivity", mock.Anything, mock.Anything)
}

func (suite *ActivityServiceTestSuite) TestCreateActivity_Success() {
	p := staffPrincipal()
	asset := &domain.Asset{AssetID: "asset1", WorkspaceID: "w1"}
	suite.mockAssetRepo.On("FindAssetByID", suite.ctx, "asset1").Return(asset, nil).Once()
	suite.mockActivityRepo.On("SaveActivity", suite.ctx, mock.MatchedBy(func(a domain.ActivityInstance) bool {
		return a.WorkspaceID == "w1" && a.AssetID == "asset1" && a.Kind == domain.ActivityChecked && a.PerformedBy != nil && *a.PerformedBy == p.UserID
	})).Return(nil).Once()

	req := createActivityRequest("w1", "asset1")
	activity, err := suite.service.CreateActivity(suite.ctx, p, req)

	suite.NoError(err)
	suite.NotEmpty(activity.ActivityID)
	suite.mockActivityRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestCreateActivity_MaintenanceManagerSkipsMembershipCheck() {
	p := maintainerPrincipal()
	asset := &domain.Asset{AssetID: "asset1", WorkspaceID: "w1"}
	suite.mockAssetRepo.On("FindAssetByID", suite.ctx, "asset1").Return(asset, nil).Once()
	suite.mockActivityRepo.On("SaveActivity", suite.ctx, mock.MatchedBy(func(a domain.ActivityInstance) bool {
		return a.WorkspaceID == "w1" && a.PerformedBy != nil && *a.PerformedBy == p.UserID
	})).Return(nil).Once()

	req := createActivityRequest("w1", "asset1")
	activity, err := suite.service.CreateActivity(suite.ctx, p, req)

	suite.NoError(err)
	suite.NotEmpty(activity.ActivityID)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "HasWorkspaceRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestActivityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}
