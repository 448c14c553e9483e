package provisioning

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const folderMimeType = "application/vnd.google-apps.folder"

// GoogleWorkspace implements DriveService and SheetWriter against the Google
// Drive and Sheets APIs with a service-account credential.
type GoogleWorkspace struct {
	drive  *drive.Service
	sheets *sheets.Service
}

func NewGoogleWorkspace(ctx context.Context, credentialsFile string) (*GoogleWorkspace, error) {
	driveSvc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	sheetsSvc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &GoogleWorkspace{drive: driveSvc, sheets: sheetsSvc}, nil
}

func (g *GoogleWorkspace) CreateFolder(ctx context.Context, name, parentID string) (Resource, error) {
	f, err := g.drive.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).Fields("id", "webViewLink").Context(ctx).Do()
	if err != nil {
		return Resource{}, fmt.Errorf("drive folder create failed: %w", err)
	}
	return Resource{ID: f.Id, URL: f.WebViewLink}, nil
}

func (g *GoogleWorkspace) CopyFile(ctx context.Context, fileID, name, parentID string) (Resource, error) {
	f, err := g.drive.Files.Copy(fileID, &drive.File{
		Name:    name,
		Parents: []string{parentID},
	}).Fields("id", "webViewLink").Context(ctx).Do()
	if err != nil {
		return Resource{}, fmt.Errorf("drive file copy failed: %w", err)
	}
	return Resource{ID: f.Id, URL: f.WebViewLink}, nil
}

func (g *GoogleWorkspace) UpdateColumn(ctx context.Context, spreadsheetID, rangeRef string, values []string) error {
	vr := &sheets.ValueRange{
		Values: make([][]interface{}, len(values)),
	}
	for i, v := range values {
		vr.Values[i] = []interface{}{v}
	}

	_, err := g.sheets.Spreadsheets.Values.Update(spreadsheetID, rangeRef, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheet range update failed: %w", err)
	}
	return nil
}
