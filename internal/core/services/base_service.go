package services

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/FlynntKnapp/planit-mini/internal/apperrors"
	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/FlynntKnapp/planit-mini/internal/middleware"
)

// BaseService provides common functionality for all services: request-scoped
// logging and the two permission checks every record operation goes through.
type BaseService struct {
	Evaluator *authz.Evaluator
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireWrite checks that the principal may modify the given record. Staff
// and maintenance managers always pass; everyone else needs a manager or
// admin membership on the record's resolved workspace. Records with no
// resolvable workspace can only be written by the privileged group.
func (s *BaseService) RequireWrite(ctx context.Context, p authz.Principal, obj domain.WorkspaceScoped) error {
	if !p.Authenticated {
		return apperrors.ErrUnauthorized
	}
	if s.Evaluator == nil || s.Evaluator.MayActOn(ctx, p, http.MethodPost, obj) {
		return nil
	}
	return apperrors.NewForbiddenError("you do not have permission to perform this action")
}

// RequireVisible checks that the principal may read the given record. Access
// is denied as not-found so non-members cannot probe for existence. Records
// with no resolvable workspace (the global catalog) are readable by any
// authenticated caller.
func (s *BaseService) RequireVisible(ctx context.Context, p authz.Principal, obj domain.WorkspaceScoped, memberships authz.MembershipLookup) error {
	if !p.Authenticated {
		return apperrors.ErrUnauthorized
	}
	if p.Privileged() {
		return nil
	}
	workspaceID, ok := obj.OwningWorkspaceID()
	if !ok {
		return nil
	}
	member, err := memberships.HasWorkspaceRole(ctx, p.UserID, workspaceID, domain.RoleViewer, domain.RoleManager, domain.RoleAdmin)
	if err != nil {
		s.LogError(ctx, err, "Membership lookup failed during visibility check", slog.String("workspace_id", workspaceID))
		return apperrors.NewNotFoundError("resource not found")
	}
	if !member {
		return apperrors.NewNotFoundError("resource not found")
	}
	return nil
}
