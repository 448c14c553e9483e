package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marminbh/job-intake-svc/internal/config"
	"github.com/marminbh/job-intake-svc/internal/crm"
	"github.com/marminbh/job-intake-svc/internal/models"
	"github.com/marminbh/job-intake-svc/internal/provisioning"
)

type stubDrive struct {
	created int
	copied  int
}

func (d *stubDrive) CreateFolder(_ context.Context, name, parentID string) (provisioning.Resource, error) {
	d.created++
	id := fmt.Sprintf("folder-%d", d.created)
	return provisioning.Resource{ID: id, URL: "https://drive.test/" + id}, nil
}

func (d *stubDrive) CopyFile(_ context.Context, fileID, name, parentID string) (provisioning.Resource, error) {
	d.copied++
	id := fmt.Sprintf("file-%d", d.copied)
	return provisioning.Resource{ID: id, URL: "https://drive.test/" + id}, nil
}

type stubSheets struct{ updates int }

func (s *stubSheets) UpdateColumn(context.Context, string, string, []string) error {
	s.updates++
	return nil
}

func newHandlerUnderTest(t *testing.T, crmHandler http.Handler) (*Worker, *stubDrive, *stubSheets) {
	t.Helper()
	srv := httptest.NewServer(crmHandler)
	t.Cleanup(srv.Close)

	drive := &stubDrive{}
	sheets := &stubSheets{}
	provisioner := &provisioning.Provisioner{
		Drive:        drive,
		Sheets:       sheets,
		RootFolderID: "root-folder",
		Structure: provisioning.DiscoveryStructure(&config.DriveConfig{
			EstimateTemplateID: "tpl-estimate",
			CostingTemplateID:  "tpl-costing",
		}),
		Logger: zap.NewNop(),
	}
	client := crm.NewClient(&config.CRMConfig{BaseURL: srv.URL, APIToken: "t"}, zap.NewNop())

	return NewWorker(&config.WorkerConfig{ProvisionQueue: "jobs.provision"}, nil, provisioner, client, zap.NewNop()), drive, sheets
}

func provisionBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.ProvisionMessage{Job: models.Job{
		JobNumber:      1484,
		Year:           2026,
		IntakeID:       "5e0bf192-2d18-4a45-9d5e-43a9306b21a1",
		FullFolderName: "1484 Museum Exhibit Acme Co",
		Deal:           models.JobDeal{ID: "101", Title: "Museum Exhibit"},
	}})
	require.NoError(t, err)
	return body
}

func TestHandleMessageProvisionsAndWritesBack(t *testing.T) {
	var putPath string
	var putBody []byte
	handler, drive, sheets := newHandlerUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		putPath = r.URL.Path
		putBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"deal": {"id": "101"}}`)
	}))

	require.NoError(t, handler.HandleMessage(provisionBody(t)))

	// Root + four sub-folders, both templates, one sheet fill.
	assert.Equal(t, 5, drive.created)
	assert.Equal(t, 2, drive.copied)
	assert.Equal(t, 1, sheets.updates)

	// The generated resource ids go back onto the deal.
	assert.Equal(t, "/deals/101", putPath)
	var put struct {
		Deal struct {
			Fields []struct {
				CustomFieldID int64  `json:"customFieldId"`
				FieldValue    string `json:"fieldValue"`
			} `json:"fields"`
		} `json:"deal"`
	}
	require.NoError(t, json.Unmarshal(putBody, &put))
	require.Len(t, put.Deal.Fields, 3)
	assert.Equal(t, int64(29), put.Deal.Fields[0].CustomFieldID)
	assert.Equal(t, "https://drive.test/folder-1", put.Deal.Fields[0].FieldValue)
	assert.Equal(t, int64(30), put.Deal.Fields[1].CustomFieldID)
	assert.Equal(t, "file-1", put.Deal.Fields[1].FieldValue)
	assert.Equal(t, int64(31), put.Deal.Fields[2].CustomFieldID)
	assert.Equal(t, "folder-1", put.Deal.Fields[2].FieldValue)
}

func TestHandleMessageSettlesMalformedBody(t *testing.T) {
	handler, drive, _ := newHandlerUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no CRM call expected for a malformed message")
	}))

	// A nil error settles the delivery so it cannot loop forever.
	assert.NoError(t, handler.HandleMessage([]byte("not json")))
	assert.Zero(t, drive.created)
}

func TestHandleMessageSurfacesWritebackFailure(t *testing.T) {
	handler, _, _ := newHandlerUnderTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	err := handler.HandleMessage(provisionBody(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
