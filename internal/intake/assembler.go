package intake

import (
	"strconv"

	"github.com/marminbh/job-intake-svc/internal/crm"
	"github.com/marminbh/job-intake-svc/internal/fields"
	"github.com/marminbh/job-intake-svc/internal/models"
)

// FullFolderName derives the job folder name: the job number and deal title,
// with the organization name appended when there is one.
func FullFolderName(jobNumber int, dealTitle, organizationName string) string {
	name := strconv.Itoa(jobNumber) + " " + dealTitle
	if organizationName != "" {
		name += " " + organizationName
	}
	return name
}

// Assemble merges the entity bundle and extracted attributes into the
// canonical Job record. This is the sole output of the intake core and the
// complete input for provisioning and writeback.
func Assemble(jobNumber, year int, intakeID string, bundle crm.Bundle, extracted fields.Extracted) models.Job {
	job := models.Job{
		JobNumber: jobNumber,
		Year:      year,
		IntakeID:  intakeID,
		Deal: models.JobDeal{
			ID:               bundle.Deal.ID,
			Title:            bundle.Deal.Title,
			Description:      bundle.Deal.Description,
			Value:            bundle.Deal.Value,
			FormattedValue:   extracted.FormattedValue,
			CreatedAt:        bundle.Deal.CreatedAt,
			DateEstimateSent: extracted.DateEstimateSent,
			EndUser:          extracted.EndUser,
			NDA:              extracted.NDA,
			DeliveryLocation: extracted.DeliveryLocation,
			DeliveryDate:     extracted.DeliveryDate,
			InstallDate:      extracted.InstallDate,
			StrikeDate:       extracted.StrikeDate,
			FirstNote:        bundle.FirstNote(),
		},
		Contact: models.JobContact{
			FirstName: bundle.Contact.FirstName,
			LastName:  bundle.Contact.LastName,
			Email:     bundle.Contact.Email,
			Phone:     bundle.Contact.Phone,
			JobTitle:  bundle.ContactJobTitle(),
			LeadType:  extracted.LeadType,
		},
		User: models.JobUser{
			FirstName: bundle.User.FirstName,
			LastName:  bundle.User.LastName,
		},
	}

	if bundle.Organization != nil {
		job.Organization = &models.JobOrganization{
			ID:       bundle.Organization.ID,
			Name:     bundle.Organization.Name,
			Phone:    extracted.OrganizationPhone,
			Industry: extracted.Industry,
		}
	}

	job.FullFolderName = FullFolderName(jobNumber, bundle.Deal.Title, job.OrganizationName())

	return job
}
