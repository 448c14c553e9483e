// Package fields holds the registry of CRM custom-field identifiers and the
// extraction of those fields into canonical job attributes.
package fields

// Deal custom-field identifiers. The deal endpoint ships customFieldId as a
// JSON number, so these stay numeric.
const (
	DealDateEstimateSent int64 = 21
	DealEndUser          int64 = 22
	DealNDA              int64 = 23
	DealDeliveryLocation int64 = 24
	DealDeliveryDate     int64 = 25
	DealInstallDate      int64 = 26
	DealStrikeDate       int64 = 27
	DealJobNumber        int64 = 28
	DealJobFolderURL     int64 = 29
	DealEstimateSheetID  int64 = 30
	DealDriveFolderID    int64 = 31
)

// Organization and contact custom-field identifiers. The account and contact
// endpoints ship these as strings, so all comparison happens on the string
// form; OrganizationCustomField normalizes numeric wire values the same way.
const (
	OrgIndustry       = "9"
	OrgPhone          = "10"
	ContactLeadSource = "47"
)
