package domain

// Catalog records are global reference data shared across workspaces. They do
// not resolve to any workspace, so non-privileged users cannot write them.

// FormFactor describes the physical form of an asset (e.g. "Rack server").
type FormFactor struct {
	FormFactorID string `json:"formFactorID"`
	Name         string `json:"name"` // Unique
	Slug         string `json:"slug"` // Unique
}

// OS is an operating system catalog entry.
type OS struct {
	OSID    string `json:"osID"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Slug    string `json:"slug"` // Unique
}

// Application is a software catalog entry that can be installed on assets.
type Application struct {
	ApplicationID string `json:"applicationID"`
	Name          string `json:"name"`
	Version       string `json:"version"`
	Slug          string `json:"slug"` // Unique
}
