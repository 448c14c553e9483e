package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func qualifyingPayload() Payload {
	return Payload{
		"deal[stage_title]": "Discovery",
		"deal[id]":          "101",
		"deal[contactid]":   "55",
		"deal[orgname]":     "Acme Co",
		"updated_fields[0]": "stage",
	}
}

func TestClassifyQualifies(t *testing.T) {
	c := Classify(qualifyingPayload())

	assert.True(t, c.Qualifies)
	assert.Equal(t, "101", c.DealID)
	assert.Equal(t, "55", c.ContactID)
}

func TestClassifyRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Payload)
	}{
		{
			name: "stage title is not Discovery",
			mutate: func(p Payload) {
				p["deal[stage_title]"] = "Proposal Sent"
			},
		},
		{
			name: "stage not among updated fields",
			mutate: func(p Payload) {
				p["updated_fields[0]"] = "value"
			},
		},
		{
			name: "no organization assigned",
			mutate: func(p Payload) {
				delete(p, "deal[orgname]")
			},
		},
		{
			name: "organization key present but empty",
			mutate: func(p Payload) {
				p["deal[orgname]"] = ""
			},
		},
		{
			name: "deal already has a job number",
			mutate: func(p Payload) {
				p["deal[fields][2][key]"] = "Job Number"
				p["deal[fields][2][value]"] = "1484"
			},
		},
		{
			name: "missing deal id",
			mutate: func(p Payload) {
				delete(p, "deal[id]")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := qualifyingPayload()
			tt.mutate(p)

			c := Classify(p)

			assert.False(t, c.Qualifies)
			assert.Empty(t, c.DealID)
		})
	}
}

func TestClassifyJobNumberLabelInUpdatedFieldsIsIgnored(t *testing.T) {
	// "Job Number" appearing as an updated-field value is not a custom-field
	// label and must not suppress the event
	p := qualifyingPayload()
	p["updated_fields[1]"] = "Job Number"

	c := Classify(p)

	assert.True(t, c.Qualifies)
}

func TestClassifyEmptyJobNumberValueStillQualifies(t *testing.T) {
	// The label exists but the sibling value is empty: the deal has the
	// custom field defined, just no number yet
	p := qualifyingPayload()
	p["deal[fields][2][key]"] = "Job Number"
	p["deal[fields][2][value]"] = ""

	c := Classify(p)

	assert.True(t, c.Qualifies)
}
