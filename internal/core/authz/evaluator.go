package authz

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
)

// MembershipLookup answers role queries against the current membership table.
// Implemented by the workspace repository.
type MembershipLookup interface {
	// HasWorkspaceRole reports whether the user holds any of the given roles
	// in the workspace.
	HasWorkspaceRole(ctx context.Context, userID, workspaceID string, roles ...domain.MembershipRole) (bool, error)
}

// SafeMethod reports whether the HTTP method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Evaluator is the stateless policy consulted by the API layer before every
// operation. Both checks are total: they return a decision for every input
// and never panic or propagate errors; a failed membership lookup degrades to
// deny.
type Evaluator struct {
	memberships MembershipLookup
	logger      *slog.Logger
}

// NewEvaluator creates a permission evaluator backed by the given lookup.
func NewEvaluator(memberships MembershipLookup, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{memberships: memberships, logger: logger}
}

// MayProceed is the coarse check applied before any data access.
// Unauthenticated callers are denied; any authenticated caller may read.
// Write methods pass here too: the real write decision is made per object by
// MayActOn and by queryset scoping, which deliberately leaves collection-level
// creates open to any authenticated user.
func (e *Evaluator) MayProceed(p Principal, method string) bool {
	if !p.Authenticated {
		return false
	}
	if SafeMethod(method) {
		return true
	}
	// Unsafe methods are allowed through here; object-level checks follow.
	return true
}

// MayActOn is the fine-grained check applied before acting on a specific
// record. Reads are allowed for any authenticated caller — read scoping
// happens at the collection-filtering layer. Writes require staff, the
// maintenance manager capability, or a manager/admin membership on the
// record's resolved workspace. An unresolvable workspace denies.
func (e *Evaluator) MayActOn(ctx context.Context, p Principal, method string, obj domain.WorkspaceScoped) bool {
	if !p.Authenticated {
		return false
	}
	if SafeMethod(method) {
		return true
	}
	if p.Privileged() {
		return true
	}
	if obj == nil {
		return false
	}
	workspaceID, ok := obj.OwningWorkspaceID()
	if !ok {
		return false
	}
	allowed, err := e.memberships.HasWorkspaceRole(ctx, p.UserID, workspaceID, domain.WriteRoles...)
	if err != nil {
		e.logger.Error("Membership lookup failed, denying write",
			slog.String("user_id", p.UserID),
			slog.String("workspace_id", workspaceID),
			slog.String("error", err.Error()))
		return false
	}
	return allowed
}
