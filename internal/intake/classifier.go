// Package intake implements the job intake pipeline: classify a deal webhook
// notification, gather the deal's entities from the CRM, allocate the next job
// number, assemble the Job aggregate, and hand it off to provisioning.
package intake

import "strings"

// DiscoveryStage is the pipeline phase that triggers job creation
const DiscoveryStage = "Discovery"

// Payload is one flattened webhook notification. Nested paths are encoded in
// the keys, e.g. "deal[stage_title]", "updated_fields[0]", and custom fields
// arrive as sibling "...[key]"/"...[value]" pairs.
type Payload map[string]string

// notice is the typed reading of a payload, extracted before any
// qualification logic runs
type notice struct {
	stageTitle        string
	dealID            string
	contactID         string
	existingJobNumber string
	stageUpdated      bool
	orgAssigned       bool
}

func parseNotice(p Payload) notice {
	n := notice{
		stageTitle: p["deal[stage_title]"],
		dealID:     p["deal[id]"],
		contactID:  p["deal[contactid]"],
	}

	for key, value := range p {
		if strings.Contains(key, "deal[orgname]") && value != "" {
			n.orgAssigned = true
		}
		if strings.Contains(key, "updated_fields") && value == "stage" {
			n.stageUpdated = true
		}
		// A "Job Number" value marks the label half of a custom-field pair;
		// the actual number sits under the sibling "[value]" key. Keys from
		// the updated_fields group can also carry the literal and are not
		// labels.
		if value == "Job Number" && !strings.Contains(key, "updated_fields") {
			n.existingJobNumber = p[strings.Replace(key, "[key]", "[value]", 1)]
		}
	}

	return n
}

// Classification is the classifier verdict. DealID and ContactID are set only
// when the event qualifies.
type Classification struct {
	Qualifies bool
	DealID    string
	ContactID string
}

// Classify decides whether a payload represents a deal entering the Discovery
// stage that should become a job: the stage title must be Discovery, "stage"
// must be among the updated fields, the deal must have an organization
// assigned and must not already carry a job number. A qualifying event with no
// deal id is malformed and does not qualify.
func Classify(p Payload) Classification {
	n := parseNotice(p)

	if n.stageTitle != DiscoveryStage || n.existingJobNumber != "" || !n.stageUpdated || !n.orgAssigned {
		return Classification{}
	}
	if n.dealID == "" {
		return Classification{}
	}

	return Classification{
		Qualifies: true,
		DealID:    n.dealID,
		ContactID: n.contactID,
	}
}
