package fields

import (
	"strings"

	"github.com/marminbh/job-intake-svc/internal/crm"
)

// Extracted holds the scalar attributes pulled out of the raw custom-field
// collections for one job. Absent fields are empty strings.
type Extracted struct {
	DateEstimateSent  string
	EndUser           string
	NDA               string
	DeliveryLocation  string
	DeliveryDate      string
	InstallDate       string
	StrikeDate        string
	FormattedValue    string
	Industry          string
	OrganizationPhone string
	LeadType          string
}

// Extract maps the registry onto the bundle's raw custom-field collections.
// It reads the bundle only, so running it twice yields identical results.
func Extract(bundle crm.Bundle) Extracted {
	return Extracted{
		DateEstimateSent:  dealField(bundle.DealFields, DealDateEstimateSent),
		EndUser:           dealField(bundle.DealFields, DealEndUser),
		NDA:               dealField(bundle.DealFields, DealNDA),
		DeliveryLocation:  dealField(bundle.DealFields, DealDeliveryLocation),
		DeliveryDate:      dealField(bundle.DealFields, DealDeliveryDate),
		InstallDate:       dealField(bundle.DealFields, DealInstallDate),
		StrikeDate:        dealField(bundle.DealFields, DealStrikeDate),
		FormattedValue:    FormatValue(bundle.Deal.Value),
		Industry:          orgField(bundle.OrganizationFields, OrgIndustry),
		OrganizationPhone: orgField(bundle.OrganizationFields, OrgPhone),
		LeadType:          contactField(bundle.ContactFieldValues, ContactLeadSource),
	}
}

func dealField(entries []crm.DealCustomField, id int64) string {
	for _, f := range entries {
		if f.CustomFieldID == id {
			return f.Value()
		}
	}
	return ""
}

func orgField(entries []crm.OrganizationCustomField, id string) string {
	for _, f := range entries {
		if f.CustomFieldID.String() == id {
			return f.TextValue
		}
	}
	return ""
}

func contactField(entries []crm.ContactFieldValue, id string) string {
	for _, f := range entries {
		if f.Field == id {
			return f.Value
		}
	}
	return ""
}

// FormatValue inserts a decimal separator two digits from the end of a raw
// cents-encoded amount: "123456" becomes "1234.56". An empty input stays
// empty. Inputs shorter than three digits are amounts under a dollar and are
// zero-padded to the canonical "0.xx" form.
func FormatValue(raw string) string {
	if raw == "" {
		return ""
	}
	if len(raw) < 3 {
		raw = strings.Repeat("0", 3-len(raw)) + raw
	}
	return raw[:len(raw)-2] + "." + raw[len(raw)-2:]
}
