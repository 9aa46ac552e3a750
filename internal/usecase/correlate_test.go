package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunovl/leadbridge/internal/entity"
)

func lead(id, name, rawPhone string) entity.Lead {
	return entity.Lead{ID: id, FullName: name, Phone: rawPhone}
}

func callTo(number, typ string) entity.Call {
	return entity.Call{ContactNumber: number, Type: typ, CallDate: "2026-02-01", CallTime: "09:00:00"}
}

func TestCorrelationMatchesByNormalizedPhone(t *testing.T) {
	leads := []entity.Lead{
		lead("l1", "First", "1115550001"),
		lead("l2", "Second", "1115550002"),
		lead("l3", "Third", "1115550003"),
	}
	calls := []entity.Call{
		callTo("+1 (111) 555-0001", "answered"),
		callTo("+1 (111) 555-0001", "voicemail"),
		callTo("1115550002", "unanswered"),
		callTo("2025550009", "answered"),
		callTo("2025550010", "unanswered"),
	}

	idx := BuildCorrelationIndex(leads, calls)
	matched := idx.MatchedPhones()

	require.Equal(t, []string{"1115550001", "1115550002"}, matched)
	assert.Equal(t, 2, idx.UnmatchedCallPhones())
	assert.Equal(t, 1, idx.LeadsNeverCalled())

	s := SummarizeCalls(idx.CallsByPhone["1115550001"])
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Connected)
	assert.Equal(t, 1, s.Voicemail)
	assert.Equal(t, 0, s.Missed)
}

func TestCorrelationKeepsCallFetchOrder(t *testing.T) {
	calls := []entity.Call{
		{ContactNumber: "111", Disposition: "first"},
		{ContactNumber: "111", Disposition: "second"},
	}

	idx := BuildCorrelationIndex(nil, calls)

	require.Len(t, idx.CallsByPhone["111"], 2)
	assert.Equal(t, "first", idx.CallsByPhone["111"][0].Disposition)
}

func TestCorrelationDuplicateLeadPhoneLastWins(t *testing.T) {
	leads := []entity.Lead{
		lead("l1", "Old", "+1 555 000 1111"),
		lead("l2", "New", "15550001111"),
	}

	idx := BuildCorrelationIndex(leads, nil)

	assert.Equal(t, "l2", idx.LeadByPhone["15550001111"].ID)
}

func TestCorrelationDropsEmptyPhones(t *testing.T) {
	leads := []entity.Lead{lead("l1", "No Phone", "n/a")}
	calls := []entity.Call{callTo("---", "answered")}

	idx := BuildCorrelationIndex(leads, calls)

	assert.Empty(t, idx.LeadByPhone)
	assert.Empty(t, idx.CallsByPhone)
	assert.Empty(t, idx.MatchedPhones())
}
