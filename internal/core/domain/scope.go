package domain

// WorkspaceScoped is implemented by every record whose access is gated by the
// workspace it resolves to. OwningWorkspaceID returns the owning workspace and
// true, or ("", false) when no workspace can be resolved. Resolution follows a
// fixed priority chain: a direct workspace reference wins, then a referenced
// asset's workspace, then a referenced task's workspace. At most one
// indirection is ever followed; there is no recursive walk. Unresolvable is a
// value, not an error — callers treat it as "deny for non-privileged users".
type WorkspaceScoped interface {
	OwningWorkspaceID() (string, bool)
}

// ScopedResource is a workspace-scoped record with a stable identity, used by
// the in-memory scope filter to deduplicate results.
type ScopedResource interface {
	WorkspaceScoped
	ResourceID() string
}

// Membership carries a direct workspace reference.
func (m Membership) OwningWorkspaceID() (string, bool) {
	if m.WorkspaceID == "" {
		return "", false
	}
	return m.WorkspaceID, true
}

func (m Membership) ResourceID() string { return m.MembershipID }

func (p Project) OwningWorkspaceID() (string, bool) {
	if p.WorkspaceID == "" {
		return "", false
	}
	return p.WorkspaceID, true
}

func (p Project) ResourceID() string { return p.ProjectID }

func (a Asset) OwningWorkspaceID() (string, bool) {
	if a.WorkspaceID == "" {
		return "", false
	}
	return a.WorkspaceID, true
}

func (a Asset) ResourceID() string { return a.AssetID }

func (t MaintenanceTask) OwningWorkspaceID() (string, bool) {
	if t.WorkspaceID == "" {
		return "", false
	}
	return t.WorkspaceID, true
}

func (t MaintenanceTask) ResourceID() string { return t.TaskID }

// A work order normally carries its workspace directly; when it does not, the
// workspace is derived through the referenced asset, then the referenced task.
func (w WorkOrder) OwningWorkspaceID() (string, bool) {
	if w.WorkspaceID != "" {
		return w.WorkspaceID, true
	}
	if w.Asset != nil {
		if id, ok := w.Asset.OwningWorkspaceID(); ok {
			return id, true
		}
	}
	if w.Task != nil {
		if id, ok := w.Task.OwningWorkspaceID(); ok {
			return id, true
		}
	}
	return "", false
}

func (w WorkOrder) ResourceID() string { return w.WorkOrderID }

func (a ActivityInstance) OwningWorkspaceID() (string, bool) {
	if a.WorkspaceID != "" {
		return a.WorkspaceID, true
	}
	if a.Asset != nil {
		if id, ok := a.Asset.OwningWorkspaceID(); ok {
			return id, true
		}
	}
	return "", false
}

func (a ActivityInstance) ResourceID() string { return a.ActivityID }

// A workspace is the tenancy boundary itself, not a record inside one, so it
// never resolves. Writes to workspaces fall back to the global overrides.
func (w Workspace) OwningWorkspaceID() (string, bool) { return "", false }

func (w Workspace) ResourceID() string { return w.WorkspaceID }

// Catalog records are global and never resolve to a workspace.

func (f FormFactor) OwningWorkspaceID() (string, bool) { return "", false }

func (f FormFactor) ResourceID() string { return f.FormFactorID }

func (o OS) OwningWorkspaceID() (string, bool) { return "", false }

func (o OS) ResourceID() string { return o.OSID }

func (a Application) OwningWorkspaceID() (string, bool) { return "", false }

func (a Application) ResourceID() string { return a.ApplicationID }
