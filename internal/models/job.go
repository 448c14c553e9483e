package models

// Job is the canonical aggregate assembled from one qualifying deal-stage
// change. It is created once per intake and, after hand-off, only the
// provisioning worker touches it (folder and spreadsheet identifiers).
type Job struct {
	JobNumber      int    `json:"job_number"`
	Year           int    `json:"year"`
	IntakeID       string `json:"intake_id"`
	FullFolderName string `json:"full_folder_name"`

	// Filled in by provisioning
	FolderURL             string `json:"folder_url,omitempty"`
	FolderID              string `json:"folder_id,omitempty"`
	EstimateSpreadsheetID string `json:"estimate_spreadsheet_id,omitempty"`

	Deal         JobDeal          `json:"deal"`
	Contact      JobContact       `json:"contact"`
	Organization *JobOrganization `json:"organization,omitempty"`
	User         JobUser          `json:"user"`
}

// JobDeal is the deal snapshot enriched with its extracted custom-field
// scalars. Value keeps the raw cents encoding; FormattedValue carries the
// decimal form.
type JobDeal struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Value            string `json:"value"`
	FormattedValue   string `json:"formatted_value"`
	CreatedAt        string `json:"created_at"`
	DateEstimateSent string `json:"date_estimate_sent"`
	EndUser          string `json:"end_user"`
	NDA              string `json:"nda"`
	DeliveryLocation string `json:"delivery_location"`
	DeliveryDate     string `json:"delivery_date"`
	InstallDate      string `json:"install_date"`
	StrikeDate       string `json:"strike_date"`
	FirstNote        string `json:"first_note"`
}

type JobContact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	JobTitle  string `json:"job_title"`
	LeadType  string `json:"lead_type"`
}

type JobOrganization struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Industry string `json:"industry"`
}

type JobUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// OwnerName returns the deal owner's full name
func (j Job) OwnerName() string {
	return j.User.FirstName + " " + j.User.LastName
}

// ContactName returns the contact's full name
func (j Job) ContactName() string {
	return j.Contact.FirstName + " " + j.Contact.LastName
}

// OrganizationName returns the account name, or "" when the deal has no
// organization
func (j Job) OrganizationName() string {
	if j.Organization == nil {
		return ""
	}
	return j.Organization.Name
}
