package crm

import "encoding/json"

// Deal is the CRM sales-pipeline record that a job intake starts from.
// Identifiers and the monetary value arrive as strings on the wire; the value
// carries the amount in cents with no decimal separator.
type Deal struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Owner        string `json:"owner"`
	Organization string `json:"organization"`
	Value        string `json:"value"`
	CreatedAt    string `json:"cdate"`
}

type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// AccountContact links a contact to an organization and carries the job title
// the contact holds there.
type AccountContact struct {
	JobTitle string `json:"jobTitle"`
}

// ContactFieldValue is one contact custom-field entry. The field identifier is
// a string on the wire even though deal custom-field ids are numeric.
type ContactFieldValue struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Organization is the CRM "account" record.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the deal owner.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DealCustomField is one dealCustomFieldData entry. fieldValue is a plain
// string for text and date fields but an array for multi-select fields, so it
// decodes loosely and Value flattens it.
type DealCustomField struct {
	CustomFieldID int64       `json:"customFieldId"`
	FieldValue    interface{} `json:"fieldValue"`
}

// Value returns the field value as a scalar string. Array values collapse to
// their first element, matching how the automation has always read them.
func (f DealCustomField) Value() string {
	switch v := f.FieldValue.(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// OrganizationCustomField is one customerAccountCustomFieldData entry. The API
// has shipped custom_field_id both as a JSON number and as a string;
// json.Number keeps either form comparable through its String method.
type OrganizationCustomField struct {
	CustomFieldID json.Number `json:"custom_field_id"`
	TextValue     string      `json:"custom_field_text_value"`
}

// Note is one deal note body.
type Note struct {
	Note string `json:"note"`
}

// ContactProfile is the side-loaded GET /contacts/:id response: the contact
// itself plus its custom-field values and organization associations.
type ContactProfile struct {
	Contact         Contact             `json:"contact"`
	FieldValues     []ContactFieldValue `json:"fieldValues"`
	AccountContacts []AccountContact    `json:"accountContacts"`
}

// FieldUpdate is one {customFieldId, fieldValue} pair in a partial deal update.
type FieldUpdate struct {
	CustomFieldID int64  `json:"customFieldId"`
	FieldValue    string `json:"fieldValue"`
}

// DealUpdate is the partial deal update body. An empty Title leaves the title
// untouched.
type DealUpdate struct {
	Title  string        `json:"title,omitempty"`
	Fields []FieldUpdate `json:"fields"`
}
