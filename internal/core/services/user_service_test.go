package services_test

import (
	"context"
	"testing"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/core/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	ctx          context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.ctx = context.Background()
}

// --- Capability groups ---

func (suite *UserServiceTestSuite) TestAddUserToGroup_StaffGrantsMaintenanceManager() {
	targetUserID := uuid.NewString()
	target := &domain.User{UserID: targetUserID, Username: "fieldtech"}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, targetUserID).Return(target, nil).Once()
	suite.mockUserRepo.On("ListUserGroups", suite.ctx, targetUserID).Return([]string{}, nil).Once()
	suite.mockUserRepo.On("AddUserToGroup", suite.ctx, targetUserID, domain.GroupMaintenanceManager).Return(nil).Once()
	suite.mockUserRepo.On("ListUserGroups", suite.ctx, targetUserID).Return([]string{domain.GroupMaintenanceManager}, nil).Once()

	user, err := suite.service.AddUserToGroup(suite.ctx, staffPrincipal(), targetUserID, domain.GroupMaintenanceManager)

	suite.Require().NoError(err)
	suite.Contains(user.Groups, domain.GroupMaintenanceManager)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAddUserToGroup_NonStaffForbidden() {
	_, err := suite.service.AddUserToGroup(suite.ctx, memberPrincipal(), uuid.NewString(), domain.GroupMaintenanceManager)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "AddUserToGroup", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAddUserToGroup_UnknownGroupRejected() {
	_, err := suite.service.AddUserToGroup(suite.ctx, staffPrincipal(), uuid.NewString(), "wizards")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestRemoveUserFromGroup_Success() {
	targetUserID := uuid.NewString()
	target := &domain.User{UserID: targetUserID, Username: "fieldtech"}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, targetUserID).Return(target, nil).Once()
	suite.mockUserRepo.On("ListUserGroups", suite.ctx, targetUserID).Return([]string{domain.GroupMaintenanceManager}, nil).Once()
	suite.mockUserRepo.On("RemoveUserFromGroup", suite.ctx, targetUserID, domain.GroupMaintenanceManager).Return(nil).Once()
	suite.mockUserRepo.On("ListUserGroups", suite.ctx, targetUserID).Return([]string{}, nil).Once()

	user, err := suite.service.RemoveUserFromGroup(suite.ctx, staffPrincipal(), targetUserID, domain.GroupMaintenanceManager)

	suite.Require().NoError(err)
	suite.Empty(user.Groups)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAddUserToGroup_UnknownUser() {
	targetUserID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", suite.ctx, targetUserID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddUserToGroup(suite.ctx, staffPrincipal(), targetUserID, domain.GroupMaintenanceManager)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Profile updates ---

func (suite *UserServiceTestSuite) TestUpdateUser_OtherUsersProfileForbidden() {
	name := "New Name"
	_, err := suite.service.UpdateUser(suite.ctx, uuid.NewString(), dto.UpdateUserRequest{Name: &name}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
