package authz

import "github.com/FlynntKnapp/planit-mini/internal/core/domain"

// MembershipSet maps workspace IDs to the caller's role there. It is a
// point-in-time snapshot of the membership table for one user, fetched fresh
// on every request so membership changes are visible immediately.
type MembershipSet map[string]domain.MembershipRole

// NewMembershipSet builds a MembershipSet from membership rows.
func NewMembershipSet(memberships []domain.Membership) MembershipSet {
	set := make(MembershipSet, len(memberships))
	for _, m := range memberships {
		set[m.WorkspaceID] = m.Role
	}
	return set
}

// VisibleSubset narrows a candidate record set to what the principal may see
// in a list view. Staff see everything, unchanged. Everyone else sees exactly
// the records whose resolved workspace appears in their membership set — any
// role grants read visibility; role only gates writes. Records that resolve to
// no workspace are excluded rather than erroring, and duplicates (the same
// resource reachable through multiple paths) are collapsed by identity. The
// result preserves input order and is deterministic regardless of it.
func VisibleSubset[T domain.ScopedResource](p Principal, memberships MembershipSet, records []T) []T {
	if !p.Authenticated {
		return nil
	}
	if p.IsStaff {
		return records
	}
	visible := make([]T, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		workspaceID, ok := r.OwningWorkspaceID()
		if !ok {
			continue
		}
		if _, member := memberships[workspaceID]; !member {
			continue
		}
		id := r.ResourceID()
		if seen[id] {
			continue
		}
		seen[id] = true
		visible = append(visible, r)
	}
	return visible
}
