package intake

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marminbh/job-intake-svc/internal/crm"
)

// FetchBundle retrieves the deal and every entity hanging off it. The deal
// fetch runs first because its result gates the owner and organization reads;
// the remaining reads are independent and run concurrently, each writing a
// distinct bundle field.
//
// Returns (nil, nil) when the CRM has no such deal. Any other failure aborts
// the whole bundle; partial bundles are never returned.
func FetchBundle(ctx context.Context, client *crm.Client, dealID, contactID string) (*crm.Bundle, error) {
	deal, err := client.GetDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}

	bundle := &crm.Bundle{Deal: *deal}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := client.GetContact(gctx, contactID)
		if err != nil {
			return err
		}
		bundle.Contact = profile.Contact
		bundle.ContactFieldValues = profile.FieldValues
		bundle.AccountContacts = profile.AccountContacts
		return nil
	})

	g.Go(func() error {
		dealFields, err := client.GetDealCustomFields(gctx, dealID)
		if err != nil {
			return err
		}
		bundle.DealFields = dealFields
		return nil
	})

	g.Go(func() error {
		notes, err := client.GetDealNotes(gctx, dealID)
		if err != nil {
			return err
		}
		bundle.Notes = notes
		return nil
	})

	g.Go(func() error {
		user, err := client.GetUser(gctx, deal.Owner)
		if err != nil {
			return err
		}
		bundle.User = *user
		return nil
	})

	if deal.Organization != "" {
		g.Go(func() error {
			org, err := client.GetOrganization(gctx, deal.Organization)
			if err != nil {
				return err
			}
			bundle.Organization = org
			return nil
		})

		g.Go(func() error {
			orgFields, err := client.GetOrganizationCustomFields(gctx, deal.Organization)
			if err != nil {
				return err
			}
			bundle.OrganizationFields = orgFields
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bundle, nil
}
