package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	portsrepo "github.com/FlynntKnapp/planit-mini/internal/core/ports/repositories"
	portssvc "github.com/FlynntKnapp/planit-mini/internal/core/ports/services"
	"github.com/FlynntKnapp/planit-mini/internal/dto"
	"github.com/FlynntKnapp/planit-mini/internal/utils"
	"github.com/google/uuid"
)

// userService handles business logic related to users.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new userService.
func NewUserService(repo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: repo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user with their capability groups loaded.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s not found", userID))
		}
		s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.loadGroups(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username with groups loaded.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", username))
		}
		s.LogError(ctx, err, "Failed to find user by username", slog.String("username", username))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.loadGroups(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser creates a new user with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("username %s is already taken", req.Username))
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("username", user.Username))
	return &user, nil
}

// GetOrCreateUserByEmail finds a user by email or provisions one from an
// external identity. Used by the OAuth login path.
func (s *userService) GetOrCreateUserByEmail(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if err := s.loadGroups(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Provision a new user. The username is derived from the email local
	// part; a random suffix avoids collisions.
	suffix, err := utils.GenerateSecureRandomString(4)
	if err != nil {
		return nil, fmt.Errorf("failed to generate username suffix: %w", err)
	}
	localPart := email
	if at := strings.Index(email, "@"); at > 0 {
		localPart = email[:at]
	}

	now := time.Now()
	newUser := domain.User{
		UserID:   uuid.NewString(),
		Username: fmt.Sprintf("%s_%s", localPart, suffix),
		Name:     name,
		Email:    email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to provision user from external identity", slog.String("email", email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User provisioned from external identity", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// UpdateUser updates a user's profile. Users may only update themselves
// unless the requesting user is the same.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, apperrors.NewForbiddenError("you can only update your own profile")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdateRefreshToken stores a new refresh token hash for the user.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		s.LogError(ctx, err, "Failed to update refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

// ClearRefreshToken removes the stored refresh token for the user.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// DeleteUser marks a user as deleted (soft delete).
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID != requestingUserID {
		return apperrors.NewForbiddenError("you can only delete your own account")
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s not found", userID))
		}
		s.LogError(ctx, err, "Failed to mark user deleted", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser verifies a username/password pair. Failures are reported
// uniformly so callers cannot distinguish a missing user from a bad password.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to find user during authentication")
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if user.DeletedAt != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.loadGroups(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddUserToGroup puts the target user in a capability group. Staff only;
// group names are restricted to the known capability groups.
func (s *userService) AddUserToGroup(ctx context.Context, p authz.Principal, targetUserID, group string) (*domain.User, error) {
	if err := requireStaffForGroup(p, group); err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.AddUserToGroup(ctx, targetUserID, group); err != nil {
		s.LogError(ctx, err, "Failed to add user to group", slog.String("user_id", targetUserID), slog.String("group", group))
		return nil, fmt.Errorf("failed to add user to group: %w", err)
	}
	if err := s.loadGroups(ctx, user); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User added to group", slog.String("user_id", targetUserID), slog.String("group", group))
	return user, nil
}

// RemoveUserFromGroup takes the target user out of a capability group.
func (s *userService) RemoveUserFromGroup(ctx context.Context, p authz.Principal, targetUserID, group string) (*domain.User, error) {
	if err := requireStaffForGroup(p, group); err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.RemoveUserFromGroup(ctx, targetUserID, group); err != nil {
		s.LogError(ctx, err, "Failed to remove user from group", slog.String("user_id", targetUserID), slog.String("group", group))
		return nil, fmt.Errorf("failed to remove user from group: %w", err)
	}
	if err := s.loadGroups(ctx, user); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User removed from group", slog.String("user_id", targetUserID), slog.String("group", group))
	return user, nil
}

func requireStaffForGroup(p authz.Principal, group string) error {
	if !p.Authenticated {
		return apperrors.ErrUnauthorized
	}
	if !p.IsStaff {
		return apperrors.NewForbiddenError("staff access required")
	}
	if group != domain.GroupMaintenanceManager {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown group %q", group))
	}
	return nil
}

// loadGroups hydrates the user's capability groups.
func (s *userService) loadGroups(ctx context.Context, user *domain.User) error {
	groups, err := s.userRepo.ListUserGroups(ctx, user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load user groups", slog.String("user_id", user.UserID))
		return fmt.Errorf("failed to load user groups: %w", err)
	}
	user.Groups = groups
	return nil
}
