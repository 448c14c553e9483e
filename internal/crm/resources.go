package crm

import (
	"context"
	"errors"
	"fmt"
)

// GetDeal fetches a deal by id. Returns (nil, nil) when the CRM has no such
// deal; the pipeline treats that as an abort, not an error.
func (c *Client) GetDeal(ctx context.Context, dealID string) (*Deal, error) {
	var resp struct {
		Deal *Deal `json:"deal"`
	}
	if err := c.get(ctx, "/deals/"+dealID, &resp); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Deal, nil
}

// GetContact fetches a contact with its side-loaded field values and account
// associations in one call.
func (c *Client) GetContact(ctx context.Context, contactID string) (*ContactProfile, error) {
	var resp ContactProfile
	if err := c.get(ctx, "/contacts/"+contactID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrganization fetches the CRM account record for an organization
func (c *Client) GetOrganization(ctx context.Context, organizationID string) (*Organization, error) {
	var resp struct {
		Account *Organization `json:"account"`
	}
	if err := c.get(ctx, "/accounts/"+organizationID, &resp); err != nil {
		return nil, err
	}
	if resp.Account == nil {
		return nil, fmt.Errorf("CRM returned no account for organization %s", organizationID)
	}
	return resp.Account, nil
}

// GetOrganizationCustomFields fetches the organization's custom-field entries
func (c *Client) GetOrganizationCustomFields(ctx context.Context, organizationID string) ([]OrganizationCustomField, error) {
	var resp struct {
		Fields []OrganizationCustomField `json:"customerAccountCustomFieldData"`
	}
	if err := c.get(ctx, "/accounts/"+organizationID+"/accountCustomFieldData", &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// GetDealCustomFields fetches the deal's custom-field entries
func (c *Client) GetDealCustomFields(ctx context.Context, dealID string) ([]DealCustomField, error) {
	var resp struct {
		Fields []DealCustomField `json:"dealCustomFieldData"`
	}
	if err := c.get(ctx, "/deals/"+dealID+"/dealCustomFieldData", &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// GetDealNotes fetches the deal's notes
func (c *Client) GetDealNotes(ctx context.Context, dealID string) ([]Note, error) {
	var resp struct {
		Notes []Note `json:"notes"`
	}
	if err := c.get(ctx, "/deals/"+dealID+"/notes", &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// GetUser fetches the deal owner
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.get(ctx, "/users/"+userID, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("CRM returned no user for id %s", userID)
	}
	return resp.User, nil
}

// UpdateDeal applies a partial deal update: an optional title rewrite and a
// list of custom-field writes. Used to stamp the job number during intake and
// the generated resource ids after provisioning.
func (c *Client) UpdateDeal(ctx context.Context, dealID string, update DealUpdate) error {
	body := struct {
		Deal DealUpdate `json:"deal"`
	}{Deal: update}
	return c.put(ctx, "/deals/"+dealID, body)
}
