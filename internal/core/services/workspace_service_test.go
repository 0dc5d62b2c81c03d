package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockWorkspaceRepository is a mock type for the WorkspaceRepositoryFacade interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) FindWorkspaceBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspaces(ctx context.Context, visibleToUserID string, limit, offset int) ([]domain.Workspace, error) {
	args := m.Called(ctx, visibleToUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) AddMembership(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) FindMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockWorkspaceRepository) HasWorkspaceRole(ctx context.Context, userID, workspaceID string, roles ...domain.MembershipRole) (bool, error) {
	args := m.Called(ctx, userID, workspaceID, roles)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspaceMemberships(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockWorkspaceRepository) ListUserMemberships(ctx context.Context, userID string) ([]domain.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockWorkspaceRepository) UpdateMembershipRole(ctx context.Context, userID, workspaceID string, role domain.MembershipRole) error {
	args := m.Called(ctx, userID, workspaceID, role)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) RemoveMembership(ctx context.Context, userID, workspaceID string) error {
	args := m.Called(ctx, userID, workspaceID)
	return args.Error(0)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) ListUserGroups(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) AddUserToGroup(ctx context.Context, userID, groupName string) error {
	args := m.Called(ctx, userID, groupName)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveUserFromGroup(ctx context.Context, userID, groupName string) error {
	args := m.Called(ctx, userID, groupName)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type WorkspaceServiceTestSuite struct {
	suite.Suite
	mockWorkspaceRepo *MockWorkspaceRepository
	mockUserRepo      *MockUserRepository
	service           portssvc.WorkspaceSvcFacade
}

func (suite *WorkspaceServiceTestSuite) SetupTest() {
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	suite.mockUserRepo = new(MockUserRepository)
	evaluator := authz.NewEvaluator(suite.mockWorkspaceRepo, nil)
	suite.service = services.NewWorkspaceService(suite.mockWorkspaceRepo, suite.mockUserRepo, evaluator)
}

func memberPrincipal() authz.Principal {
	return authz.Principal{UserID: uuid.NewString(), Authenticated: true}
}

func staffPrincipal() authz.Principal {
	return authz.Principal{UserID: uuid.NewString(), Authenticated: true, IsStaff: true}
}

func maintainerPrincipal() authz.Principal {
	return authz.Principal{
		UserID:        uuid.NewString(),
		Authenticated: true,
		Capabilities:  authz.Capabilities{MaintenanceManager: true},
	}
}

// --- Test Cases ---

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_CreatorBecomesAdmin() {
	ctx := context.Background()
	p := memberPrincipal()

	suite.mockWorkspaceRepo.On("SaveWorkspace", ctx, mock.AnythingOfType("domain.Workspace")).Return(nil).Once()
	suite.mockWorkspaceRepo.On("AddMembership", ctx, mock.MatchedBy(func(m domain.Membership) bool {
		return m.UserID == p.UserID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	workspace, err := suite.service.CreateWorkspace(ctx, p, "Infra Team", "infra-team")

	suite.Require().NoError(err)
	suite.Require().NotNil(workspace)
	suite.NotEmpty(workspace.WorkspaceID)
	suite.Equal("Infra Team", workspace.Name)
	suite.Equal("infra-team", workspace.Slug)
	suite.Equal(p.UserID, workspace.CreatedBy)
	suite.WithinDuration(time.Now(), workspace.CreatedAt, time.Second)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_DuplicateSlug() {
	ctx := context.Background()
	p := memberPrincipal()

	suite.mockWorkspaceRepo.On("SaveWorkspace", ctx, mock.AnythingOfType("domain.Workspace")).Return(apperrors.ErrDuplicate).Once()

	workspace, err := suite.service.CreateWorkspace(ctx, p, "Infra Team", "infra-team")

	suite.Require().Error(err)
	suite.Nil(workspace)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "AddMembership")
}

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_Unauthenticated() {
	_, err := suite.service.CreateWorkspace(context.Background(), authz.Anonymous, "Infra Team", "infra-team")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *WorkspaceServiceTestSuite) TestGetWorkspace_MemberSees() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID, Name: "Infra Team"}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, mock.Anything).Return(true, nil).Once()

	got, err := suite.service.GetWorkspace(ctx, p, workspaceID)

	suite.Require().NoError(err)
	suite.Equal(workspace, got)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestGetWorkspace_NonMemberGetsNotFound() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID, Name: "Infra Team"}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, mock.Anything).Return(false, nil).Once()

	got, err := suite.service.GetWorkspace(ctx, p, workspaceID)

	// Existence is hidden from non-members.
	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WorkspaceServiceTestSuite) TestGetWorkspace_StaffSkipsMembershipCheck() {
	ctx := context.Background()
	p := staffPrincipal()
	workspaceID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()

	got, err := suite.service.GetWorkspace(ctx, p, workspaceID)

	suite.Require().NoError(err)
	suite.Equal(workspace, got)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "HasWorkspaceRole")
}

func (suite *WorkspaceServiceTestSuite) TestListWorkspaces_ScopedForNonStaff() {
	ctx := context.Background()
	p := memberPrincipal()
	expected := []domain.Workspace{{WorkspaceID: uuid.NewString()}}

	suite.mockWorkspaceRepo.On("ListWorkspaces", ctx, p.UserID, 20, 0).Return(expected, nil).Once()

	got, err := suite.service.ListWorkspaces(ctx, p, 20, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, got)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestListWorkspaces_UnrestrictedForStaff() {
	ctx := context.Background()
	p := staffPrincipal()
	expected := []domain.Workspace{{WorkspaceID: uuid.NewString()}, {WorkspaceID: uuid.NewString()}}

	suite.mockWorkspaceRepo.On("ListWorkspaces", ctx, "", 20, 0).Return(expected, nil).Once()

	got, err := suite.service.ListWorkspaces(ctx, p, 20, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, got)
}

func (suite *WorkspaceServiceTestSuite) TestUpdateWorkspace_RequiresAdminRole() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID, Name: "Old"}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	// Visible as a viewer, but not an admin.
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, []domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(true, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, []domain.MembershipRole{domain.RoleAdmin}).Return(false, nil).Once()

	_, err := suite.service.UpdateWorkspace(ctx, p, workspaceID, "New", "new")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "UpdateWorkspace")
}

func (suite *WorkspaceServiceTestSuite) TestUpdateWorkspace_AdminSucceeds() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID, Name: "Old", Slug: "old"}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, []domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(true, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, []domain.MembershipRole{domain.RoleAdmin}).Return(true, nil).Once()
	suite.mockWorkspaceRepo.On("UpdateWorkspace", ctx, mock.MatchedBy(func(w domain.Workspace) bool {
		return w.Name == "New" && w.Slug == "new" && w.LastUpdatedBy == p.UserID
	})).Return(nil).Once()

	got, err := suite.service.UpdateWorkspace(ctx, p, workspaceID, "New", "new")

	suite.Require().NoError(err)
	suite.Equal("New", got.Name)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestAddMember_RejectsInvalidRole() {
	ctx := context.Background()
	p := staffPrincipal()

	_, err := suite.service.AddMember(ctx, p, uuid.NewString(), uuid.NewString(), "owner")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "AddMembership")
}

func (suite *WorkspaceServiceTestSuite) TestAddMember_ValidatesTargetUser() {
	ctx := context.Background()
	p := staffPrincipal()
	workspaceID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetUserID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddMember(ctx, p, workspaceID, targetUserID, domain.RoleViewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "AddMembership")
}

func (suite *WorkspaceServiceTestSuite) TestAddMember_Success() {
	ctx := context.Background()
	p := staffPrincipal()
	workspaceID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID}
	target := &domain.User{UserID: targetUserID, Username: "jamie"}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetUserID).Return(target, nil).Once()
	suite.mockWorkspaceRepo.On("AddMembership", ctx, mock.MatchedBy(func(m domain.Membership) bool {
		return m.UserID == targetUserID && m.WorkspaceID == workspaceID && m.Role == domain.RoleManager
	})).Return(nil).Once()

	membership, err := suite.service.AddMember(ctx, p, workspaceID, targetUserID, domain.RoleManager)

	suite.Require().NoError(err)
	suite.Require().NotNil(membership)
	suite.Equal(domain.RoleManager, membership.Role)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestRemoveMember_SelfRemovalSkipsAdminCheck() {
	ctx := context.Background()
	p := memberPrincipal()
	workspaceID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspaceID, []domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(true, nil).Once()
	suite.mockWorkspaceRepo.On("RemoveMembership", ctx, p.UserID, workspaceID).Return(nil).Once()

	err := suite.service.RemoveMember(ctx, p, workspaceID, p.UserID)

	suite.Require().NoError(err)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestGetWorkspaceBySlug_NonMemberGetsNotFound() {
	ctx := context.Background()
	p := memberPrincipal()
	workspace := &domain.Workspace{WorkspaceID: uuid.NewString(), Slug: "ops-lab"}

	suite.mockWorkspaceRepo.On("FindWorkspaceBySlug", ctx, "ops-lab").Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspace.WorkspaceID, []domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(false, nil).Once()

	_, err := suite.service.GetWorkspaceBySlug(ctx, p, "ops-lab")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WorkspaceServiceTestSuite) TestGetWorkspaceBySlug_MemberSees() {
	ctx := context.Background()
	p := memberPrincipal()
	workspace := &domain.Workspace{WorkspaceID: uuid.NewString(), Slug: "ops-lab"}

	suite.mockWorkspaceRepo.On("FindWorkspaceBySlug", ctx, "ops-lab").Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("HasWorkspaceRole", ctx, p.UserID, workspace.WorkspaceID, []domain.MembershipRole{domain.RoleViewer, domain.RoleManager, domain.RoleAdmin}).Return(true, nil).Once()

	got, err := suite.service.GetWorkspaceBySlug(ctx, p, "ops-lab")

	suite.Require().NoError(err)
	suite.Equal(workspace.WorkspaceID, got.WorkspaceID)
}

func (suite *WorkspaceServiceTestSuite) TestUpdateMemberRole_ReturnsUpdatedMembership() {
	ctx := context.Background()
	p := staffPrincipal()
	workspaceID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID}
	existing := &domain.Membership{MembershipID: uuid.NewString(), UserID: targetUserID, WorkspaceID: workspaceID, Role: domain.RoleViewer}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("FindMembership", ctx, targetUserID, workspaceID).Return(existing, nil).Once()
	suite.mockWorkspaceRepo.On("UpdateMembershipRole", ctx, targetUserID, workspaceID, domain.RoleManager).Return(nil).Once()

	membership, err := suite.service.UpdateMemberRole(ctx, p, workspaceID, targetUserID, domain.RoleManager)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, membership.Role)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestUpdateMemberRole_SameRoleIsNoOp() {
	ctx := context.Background()
	p := staffPrincipal()
	workspaceID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID}
	existing := &domain.Membership{MembershipID: uuid.NewString(), UserID: targetUserID, WorkspaceID: workspaceID, Role: domain.RoleManager}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("FindMembership", ctx, targetUserID, workspaceID).Return(existing, nil).Once()

	membership, err := suite.service.UpdateMemberRole(ctx, p, workspaceID, targetUserID, domain.RoleManager)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, membership.Role)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "UpdateMembershipRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestUpdateMemberRole_UnknownMember() {
	ctx := context.Background()
	p := staffPrincipal()
	workspaceID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("FindMembership", ctx, targetUserID, workspaceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateMemberRole(ctx, p, workspaceID, targetUserID, domain.RoleAdmin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestWorkspaceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceServiceTestSuite))
}
