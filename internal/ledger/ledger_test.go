package ledger

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marminbh/job-intake-svc/internal/models"
)

func TestReserveNextIncrementsFromLastRecorded(t *testing.T) {
	store := NewMemoryStore()
	store.Provision(2026, 1483)

	n, err := store.ReserveNext(context.Background(), 2026)

	require.NoError(t, err)
	assert.Equal(t, 1484, n)
}

func TestReserveNextUnprovisionedYear(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.ReserveNext(context.Background(), 2026)

	assert.ErrorIs(t, err, ErrYearNotProvisioned)
}

func TestReserveNextConcurrentAllocationsAreDistinct(t *testing.T) {
	store := NewMemoryStore()
	store.Provision(2026, 100)

	const n = 50
	results := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			num, err := store.ReserveNext(context.Background(), 2026)
			assert.NoError(t, err)
			results[i] = num
		}(i)
	}
	wg.Wait()

	sort.Ints(results)
	for i, num := range results {
		assert.Equal(t, 101+i, num, "allocations must be distinct and consecutive")
	}
}

func testJob() models.Job {
	return models.Job{
		JobNumber:      1484,
		Year:           2026,
		IntakeID:       uuid.New().String(),
		FullFolderName: "1484 Museum Exhibit Acme Co",
		Deal: models.JobDeal{
			ID:               "101",
			Title:            "Museum Exhibit",
			Description:      "Interactive exhibit build",
			FormattedValue:   "1234.56",
			DateEstimateSent: "2026-02-10",
			EndUser:          "City Museum",
			NDA:              "Yes",
			FirstNote:        "Called about the spring show",
		},
		Contact: models.JobContact{
			FirstName: "Dana",
			LastName:  "Reyes",
			Email:     "dana@acme.example",
			JobTitle:  "Project Manager",
			LeadType:  "Referral",
		},
		Organization: &models.JobOrganization{
			Name:     "Acme Co",
			Industry: "Museums",
		},
		User: models.JobUser{FirstName: "Sam", LastName: "Okafor"},
	}
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	entry := NewEntry(testJob(), now)

	assert.Equal(t, 2026, entry.Year)
	assert.Equal(t, 1484, entry.JobNumber)
	assert.Equal(t, "Sam Okafor", entry.OwnerName)
	assert.Equal(t, "3/4/2026", entry.InquiryDate)
	assert.Equal(t, StatusAwaitingInfo, entry.Status)
	assert.Equal(t, "Acme Co", entry.ClientCompany)
	assert.Equal(t, "Dana Reyes", entry.ContactName)
	assert.Equal(t, "2/10/2026", entry.DateEstimateSent)
	assert.Equal(t, "Museums", entry.Industry)
	assert.Equal(t, "dana@acme.example", entry.ClientEmail)
	assert.Equal(t, "Called about the spring show", entry.FirstNote)
}

func TestNewEntryWithoutOrganization(t *testing.T) {
	job := testJob()
	job.Organization = nil

	entry := NewEntry(job, time.Now())

	assert.Empty(t, entry.ClientCompany)
	assert.Empty(t, entry.Industry)
}

func TestEntryRowOrder(t *testing.T) {
	entry := NewEntry(testJob(), time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC))

	row := entry.Row()

	require.Len(t, row, 20)
	assert.Equal(t, []string{
		"Sam Okafor",
		"1484",
		"3/4/2026",
		"Awaiting Info",
		"Acme Co",
		"Dana Reyes",
		"Project Manager",
		"Interactive exhibit build",
		"City Museum",
		"1484 Museum Exhibit Acme Co",
		"Yes",
		"2/10/2026",
		"1234.56",
		"",
		"",
		"Museums",
		"Referral",
		"",
		"dana@acme.example",
		"Called about the spring show",
	}, row)
}

func TestFormatUSDateString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"2026-02-10", "2/10/2026"},
		{"2026-01-15T09:30:00-08:00", "1/15/2026"},
		{"sometime next week", "sometime next week"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSDateString(tt.raw), "raw %q", tt.raw)
	}
}
