package provisioning

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marminbh/job-intake-svc/internal/models"
)

// Resource is a created Drive folder or file
type Resource struct {
	ID  string
	URL string
}

// DriveService is the folder/file storage contract the provisioner needs
type DriveService interface {
	CreateFolder(ctx context.Context, name, parentID string) (Resource, error)
	CopyFile(ctx context.Context, fileID, name, parentID string) (Resource, error)
}

// SheetWriter writes one column of values into a spreadsheet range
type SheetWriter interface {
	UpdateColumn(ctx context.Context, spreadsheetID, rangeRef string, values []string) error
}

// Provisioner creates the job folder, its sub-folders and template copies,
// and fills the estimate sheet
type Provisioner struct {
	Drive        DriveService
	Sheets       SheetWriter
	RootFolderID string
	Structure    []FolderSpec
	Logger       *zap.Logger
}

// Provision builds everything for one job and records the created folder and
// estimate spreadsheet identifiers on it. Failures abort provisioning;
// resources already created stay where they are.
func (p *Provisioner) Provision(ctx context.Context, job *models.Job) error {
	root, err := p.Drive.CreateFolder(ctx, job.FullFolderName, p.RootFolderID)
	if err != nil {
		return fmt.Errorf("failed to create job folder %q: %w", job.FullFolderName, err)
	}
	job.FolderID = root.ID
	job.FolderURL = root.URL

	p.Logger.Info("job folder created",
		zap.Int("job_number", job.JobNumber),
		zap.String("folder_id", root.ID),
	)

	for _, spec := range p.Structure {
		folderName := fmt.Sprintf("%d %s", job.JobNumber, spec.Name)
		folder, err := p.Drive.CreateFolder(ctx, folderName, root.ID)
		if err != nil {
			return fmt.Errorf("failed to create sub-folder %q: %w", folderName, err)
		}

		for _, tpl := range spec.Templates {
			fileName := fmt.Sprintf("%d %s %s", job.JobNumber, job.Deal.Title, tpl.Label)
			file, err := p.Drive.CopyFile(ctx, tpl.FileID, fileName, folder.ID)
			if err != nil {
				return fmt.Errorf("failed to copy template %s: %w", tpl.Label, err)
			}

			if tpl.Label == EstimateLabel {
				job.EstimateSpreadsheetID = file.ID
				if err := p.Sheets.UpdateColumn(ctx, file.ID, EstimateRange, EstimateValues(*job)); err != nil {
					return fmt.Errorf("failed to fill estimate sheet: %w", err)
				}
			}
		}
	}

	return nil
}
