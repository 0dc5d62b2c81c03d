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
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAssetRepository is a mock type for the AssetRepositoryFacade interface
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListAssets(ctx context.Context, filter portsrepo.AssetListFilter) ([]domain.Asset, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset, applicationIDs []string) error {
	args := m.Called(ctx, asset, applicationIDs)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset, applicationIDs []string) error {
	args := m.Called(ctx, asset, applicationIDs)
	return args.Error(0)
}

func (m *MockAssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AssetServiceTestSuite struct {
	suite.Suite
	mockAssetRepo     *MockAssetRepository
	mockWorkspaceRepo *MockWorkspaceRepository
	service           portssvc.AssetSvcFacade
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	evaluator := authz.NewEvaluator(suite.mockWorkspaceRepo, nil)
	suite.service = services.NewAssetService(suite.mockAssetRepo, suite.mockWorkspaceRepo, evaluator)
}

// --- Test Cases ---

func (suite *AssetServiceTestSuite) TestGetAsset_MemberSees() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	asset := &domain.Asset{AssetID: uuid.NewString(), WorkspaceID: workspaceID, Name: "pi-hole"}

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(asset, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, mock.Anything).Return(true, nil).Once()

	got, err := suite.service.GetAsset(ctx, p, asset.AssetID)

	suite.Require().NoError(err)
	suite.Equal(asset, got)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestGetAsset_NonMemberGetsNotFound() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	asset := &domain.Asset{AssetID: uuid.NewString(), WorkspaceID: workspaceID}

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(asset, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, mock.Anything).Return(false, nil).Once()

	got, err := suite.service.GetAsset(ctx, p, asset.AssetID)

	suite.Require().Error(err)
	suite.Nil(got)
	// Denied reads look identical to missing records.
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AssetServiceTestSuite) TestListAssets_ScopedForNonStaff() {
	ctx := context.Background()
	p := memberPrincipal()
	expected := []domain.Asset{{AssetID: uuid.NewString()}}

	suite.mockAssetRepo.On("ListAssets", ctx, mock.MatchedBy(func(f portsrepo.AssetListFilter) bool {
		return f.VisibleToUserID == p.UserID
	})).Return(expected, nil).Once()

	got, err := suite.service.ListAssets(ctx, p, dto.ListAssetsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.Equal(expected, got)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestListAssets_UnrestrictedForStaff() {
	ctx := context.Background()
	p := staffPrincipal()

	suite.mockAssetRepo.On("ListAssets", ctx, mock.MatchedBy(func(f portsrepo.AssetListFilter) bool {
		return f.VisibleToUserID == ""
	})).Return([]domain.Asset{}, nil).Once()

	_, err := suite.service.ListAssets(ctx, p, dto.ListAssetsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestListAssets_PassesFiltersThrough() {
	ctx := context.Background()
	p := memberPrincipal()
	cutoff := time.Now().AddDate(0, 3, 0)
	params := dto.ListAssetsParams{
		FormFactorID:          "ff1",
		OSID:                  "os1",
		ApplicationID:         "app1",
		Location:              "rack-2",
		NameContains:          "pi",
		WarrantyExpiresBefore: &cutoff,
		Limit:                 50,
		Offset:                10,
	}

	suite.mockAssetRepo.On("ListAssets", ctx, mock.MatchedBy(func(f portsrepo.AssetListFilter) bool {
		return f.FormFactorID == "ff1" && f.OSID == "os1" && f.ApplicationID == "app1" &&
			f.Location == "rack-2" && f.NameContains == "pi" &&
			f.WarrantyExpiresBefore == &cutoff && f.Limit == 50 && f.Offset == 10
	})).Return([]domain.Asset{}, nil).Once()

	_, err := suite.service.ListAssets(ctx, p, params)

	suite.Require().NoError(err)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestCreateAsset_Success() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	req := dto.CreateAssetRequest{
		WorkspaceID:    workspaceID,
		Name:           "pi-hole",
		Kind:           domain.KindRaspberryPi,
		ApplicationIDs: []string{"app1"},
	}

	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, mock.Anything).Return(true, nil).Once()
	suite.mockAssetRepo.On("SaveAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.WorkspaceID == workspaceID && a.Name == "pi-hole" && a.Kind == domain.KindRaspberryPi && a.CreatedBy == p.UserID
	}), []string{"app1"}).Return(nil).Once()
	suite.mockAssetRepo.On("FindAssetByID", ctx, mock.AnythingOfType("string")).Return(&domain.Asset{Name: "pi-hole"}, nil).Once()

	created, err := suite.service.CreateAsset(ctx, p, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("pi-hole", created.Name)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestCreateAsset_MaintenanceManagerSkipsMembershipCheck() {
	ctx := context.Background()
	p := maintainerPrincipal()
	workspaceID := uuid.NewString()
	req := dto.CreateAssetRequest{WorkspaceID: workspaceID, Name: "fw-edge", Kind: domain.KindServer}

	suite.mockAssetRepo.On("SaveAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.WorkspaceID == workspaceID && a.CreatedBy == p.UserID
	}), mock.Anything).Return(nil).Once()
	suite.mockAssetRepo.On("FindAssetByID", ctx, mock.AnythingOfType("string")).Return(&domain.Asset{Name: "fw-edge"}, nil).Once()

	created, err := suite.service.CreateAsset(ctx, p, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "HasWorkspaceRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestCreateAsset_InvalidKind() {
	ctx := context.Background()
	p := memberPrincipal()
	req := dto.CreateAssetRequest{WorkspaceID: uuid.NewString(), Name: "x", Kind: "TOASTER"}

	_, err := suite.service.CreateAsset(ctx, p, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveAsset")
}

func (suite *AssetServiceTestSuite) TestCreateAsset_InvisibleWorkspaceLooksMissing() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	req := dto.CreateAssetRequest{WorkspaceID: workspaceID, Name: "x", Kind: domain.KindServer}

	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, mock.Anything).Return(false, nil).Once()

	_, err := suite.service.CreateAsset(ctx, p, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveAsset")
}

func (suite *AssetServiceTestSuite) TestUpdateAsset_ViewerForbidden() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	asset := &domain.Asset{AssetID: uuid.NewString(), WorkspaceID: workspaceID, Name: "old"}
	newName := "new"

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(asset, nil).Once()
	// Visible as viewer...
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, []domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(true, nil).Once()
	// ...but has no write role.
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, domain.WriteRoles).Return(false, nil).Once()

	_, err := suite.service.UpdateAsset(ctx, p, asset.AssetID, dto.UpdateAssetRequest{Name: &newName})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "UpdateAsset")
}

func (suite *AssetServiceTestSuite) TestUpdateAsset_NilApplicationIDsLeavesLinksAlone() {
	ctx := context.Background()
	p := staffPrincipal()
	asset := &domain.Asset{AssetID: uuid.NewString(), WorkspaceID: uuid.NewString(), Name: "old", Kind: domain.KindServer}
	newName := "renamed"

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(asset, nil).Twice()
	suite.mockAssetRepo.On("UpdateAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.Name == "renamed" && a.LastUpdatedBy == p.UserID
	}), []string(nil)).Return(nil).Once()

	_, err := suite.service.UpdateAsset(ctx, p, asset.AssetID, dto.UpdateAssetRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestDeleteAsset_ManagerSucceeds() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	asset := &domain.Asset{AssetID: uuid.NewString(), WorkspaceID: workspaceID}

	suite.mockAssetRepo.On("FindAssetByID", ctx, asset.AssetID).Return(asset, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, []domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(true, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, domain.WriteRoles).Return(true, nil).Once()
	suite.mockAssetRepo.On("DeleteAsset", ctx, asset.AssetID).Return(nil).Once()

	err := suite.service.DeleteAsset(ctx, p, asset.AssetID)

	suite.Require().NoError(err)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func TestAssetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
