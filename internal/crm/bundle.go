package crm

// Bundle is everything the intake pipeline reads from the CRM for one deal.
// Organization and its custom fields are nil when the deal has no account
// assigned; every downstream organization-derived attribute is then empty.
type Bundle struct {
	Deal               Deal
	Contact            Contact
	ContactFieldValues []ContactFieldValue
	AccountContacts    []AccountContact
	Organization       *Organization
	OrganizationFields []OrganizationCustomField
	User               User
	DealFields         []DealCustomField
	Notes              []Note
}

// FirstNote returns the body of the deal's first note, or ""
func (b Bundle) FirstNote() string {
	if len(b.Notes) == 0 {
		return ""
	}
	return b.Notes[0].Note
}

// ContactJobTitle returns the job title from the contact's first account
// association, or ""
func (b Bundle) ContactJobTitle() string {
	if len(b.AccountContacts) == 0 {
		return ""
	}
	return b.AccountContacts[0].JobTitle
}
