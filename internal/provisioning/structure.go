// Package provisioning creates the Drive folder tree and templated documents
// for a newly assembled job and fills the estimate sheet.
package provisioning

import "github.com/marminbh/job-intake-svc/internal/config"

// Template labels with special handling. Only the estimate sheet gets its
// information column filled after copying; the costing sheet is copied as-is.
const (
	EstimateLabel = "ESTIMATE"
	CostingLabel  = "COSTING"
)

// Template is one master document copied into a new job folder
type Template struct {
	Label  string
	FileID string
}

// FolderSpec is one sub-folder of the job folder and the templates it receives
type FolderSpec struct {
	Name      string
	Templates []Template
}

// DiscoveryStructure is the folder tree every job entering Discovery gets
func DiscoveryStructure(cfg *config.DriveConfig) []FolderSpec {
	return []FolderSpec{
		{
			Name: "Estimating",
			Templates: []Template{
				{Label: EstimateLabel, FileID: cfg.EstimateTemplateID},
				{Label: CostingLabel, FileID: cfg.CostingTemplateID},
			},
		},
		{Name: "Design"},
		{Name: "Production"},
		{Name: "Client Documents"},
	}
}
