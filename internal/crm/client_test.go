package crm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marminbh/job-intake-svc/internal/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.CRMConfig{
		BaseURL:  srv.URL,
		APIToken: "secret-token",
	}, zap.NewNop())
}

func TestClientSendsAPIToken(t *testing.T) {
	var gotToken string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("Api-Token")
		io.WriteString(w, `{"deal": {"id": "101"}}`)
	}))

	_, err := client.GetDeal(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", gotToken)
}

func TestGetDealDecodesEnvelope(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/deals/101", r.URL.Path)
		io.WriteString(w, `{"deal": {
			"id": "101",
			"title": "Museum Exhibit",
			"owner": "7",
			"organization": "9",
			"value": "123456",
			"cdate": "2026-02-10T08:30:00-06:00"
		}}`)
	}))

	deal, err := client.GetDeal(context.Background(), "101")
	require.NoError(t, err)
	require.NotNil(t, deal)
	assert.Equal(t, "Museum Exhibit", deal.Title)
	assert.Equal(t, "7", deal.Owner)
	assert.Equal(t, "9", deal.Organization)
	assert.Equal(t, "123456", deal.Value)
}

func TestGetDealMissingIsNotAnError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	deal, err := client.GetDeal(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, deal)
}

func TestGetDealServerErrorIsAnError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	_, err := client.GetDeal(context.Background(), "101")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGetContactSideLoads(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts/55", r.URL.Path)
		io.WriteString(w, `{
			"contact": {"id": "55", "firstName": "Rita", "lastName": "Park", "email": "rita@acme.test"},
			"fieldValues": [{"field": "47", "value": "Referral"}],
			"accountContacts": [{"jobTitle": "Facilities Manager"}]
		}`)
	}))

	profile, err := client.GetContact(context.Background(), "55")
	require.NoError(t, err)
	assert.Equal(t, "Rita", profile.Contact.FirstName)
	require.Len(t, profile.FieldValues, 1)
	assert.Equal(t, "47", profile.FieldValues[0].Field)
	require.Len(t, profile.AccountContacts, 1)
	assert.Equal(t, "Facilities Manager", profile.AccountContacts[0].JobTitle)
}

func TestGetOrganizationCustomFieldsNormalizesIDs(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/9/accountCustomFieldData", r.URL.Path)
		// The API has shipped ids as both numbers and strings.
		io.WriteString(w, `{"customerAccountCustomFieldData": [
			{"custom_field_id": 9, "custom_field_text_value": "Museums"},
			{"custom_field_id": "10", "custom_field_text_value": "555-0199"}
		]}`)
	}))

	fields, err := client.GetOrganizationCustomFields(context.Background(), "9")
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "9", fields[0].CustomFieldID.String())
	assert.Equal(t, "10", fields[1].CustomFieldID.String())
}

func TestDealCustomFieldValueFlattensArrays(t *testing.T) {
	var fields []DealCustomField
	raw := `[
		{"customFieldId": 22, "fieldValue": "Science Museum"},
		{"customFieldId": 23, "fieldValue": ["Yes", "ignored"]},
		{"customFieldId": 24, "fieldValue": null}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))

	assert.Equal(t, "Science Museum", fields[0].Value())
	assert.Equal(t, "Yes", fields[1].Value())
	assert.Equal(t, "", fields[2].Value())
}

func TestUpdateDealRequestShape(t *testing.T) {
	var (
		gotMethod      string
		gotPath        string
		gotContentType string
		gotBody        []byte
	)
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"deal": {"id": "101"}}`)
	}))

	update := DealUpdate{
		Title: "1484 Museum Exhibit",
		Fields: []FieldUpdate{
			{CustomFieldID: 28, FieldValue: "1484"},
		},
	}
	require.NoError(t, client.UpdateDeal(context.Background(), "101", update))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/deals/101", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"deal": {
		"title": "1484 Museum Exhibit",
		"fields": [{"customFieldId": 28, "fieldValue": "1484"}]
	}}`, string(gotBody))
}

func TestUpdateDealOmitsEmptyTitle(t *testing.T) {
	var gotBody []byte
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"deal": {"id": "101"}}`)
	}))

	update := DealUpdate{
		Fields: []FieldUpdate{
			{CustomFieldID: 29, FieldValue: "https://drive.test/folder"},
		},
	}
	require.NoError(t, client.UpdateDeal(context.Background(), "101", update))
	assert.NotContains(t, string(gotBody), `"title"`)
}
