package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCallOccurredAt(t *testing.T) {
	c := Call{CallDate: "2026-02-10", CallTime: "14:30:05"}
	got := c.OccurredAt()
	assert.Equal(t, time.Date(2026, 2, 10, 14, 30, 5, 0, time.UTC), got)

	assert.True(t, Call{}.OccurredAt().IsZero())
	assert.True(t, Call{CallDate: "not-a-date", CallTime: "14:00:00"}.OccurredAt().IsZero())
}

func TestCallOutcome(t *testing.T) {
	assert.Equal(t, "Interested", Call{Type: CallTypeAnswered, Disposition: "Interested"}.Outcome())
	assert.Equal(t, CallTypeUnanswered, Call{Type: CallTypeUnanswered}.Outcome())
}

func TestLeadRowRoundTrip(t *testing.T) {
	lead := Lead{
		ID:           "lg-1",
		CreatedTime:  "2026-02-01T10:00:00+0000",
		FullName:     "Jane Doe",
		Phone:        "+15551234567",
		Email:        "jane@example.com",
		CompanyName:  "Acme",
		Platform:     "Facebook",
		CampaignName: "Spring",
		AdsetName:    "Set A",
		AdName:       "Ad 1",
	}

	row := lead.ToRow()
	assert.Len(t, row, len(LeadHeaders))
	assert.Equal(t, lead, LeadFromRow(row))
}

func TestLeadFromRowShortRow(t *testing.T) {
	lead := LeadFromRow([]string{"2026-02-01", "lg-2", "Jane"})
	assert.Equal(t, "lg-2", lead.ID)
	assert.Equal(t, "Jane", lead.FullName)
	assert.Empty(t, lead.Phone)
}
