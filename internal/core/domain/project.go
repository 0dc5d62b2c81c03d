package domain

// Project groups assets within a workspace. Slug is unique per workspace.
type Project struct {
	ProjectID   string `json:"projectID"`
	WorkspaceID string `json:"workspaceID" db:"workspace_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	AuditFields
}
