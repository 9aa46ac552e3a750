package usecase

import (
	"github.com/brunovl/leadbridge/internal/entity"
	"github.com/brunovl/leadbridge/internal/phone"
)

// CorrelationIndex joins leads and calls by normalized phone number.
// Duplicate normalized phones among leads are last-write-wins; duplicate
// calls are all kept in fetch order.
type CorrelationIndex struct {
	LeadByPhone  map[string]entity.Lead
	CallsByPhone map[string][]entity.Call

	callPhoneOrder []string
	matched        []string
}

// BuildCorrelationIndex indexes both record sets. Records whose phone
// normalizes to the empty string carry no usable join key and are dropped.
func BuildCorrelationIndex(leads []entity.Lead, calls []entity.Call) *CorrelationIndex {
	idx := &CorrelationIndex{
		LeadByPhone:  make(map[string]entity.Lead, len(leads)),
		CallsByPhone: make(map[string][]entity.Call),
	}

	for _, lead := range leads {
		key := phone.Normalize(lead.Phone)
		if key == "" {
			continue
		}
		idx.LeadByPhone[key] = lead
	}

	for _, call := range calls {
		key := phone.Normalize(call.ContactNumber)
		if key == "" {
			continue
		}
		if _, seen := idx.CallsByPhone[key]; !seen {
			idx.callPhoneOrder = append(idx.callPhoneOrder, key)
		}
		idx.CallsByPhone[key] = append(idx.CallsByPhone[key], call)
	}

	for _, key := range idx.callPhoneOrder {
		if _, ok := idx.LeadByPhone[key]; ok {
			idx.matched = append(idx.matched, key)
		}
	}

	return idx
}

// MatchedPhones returns the phones present in both record sets, in
// first-appearance order of the calls.
func (idx *CorrelationIndex) MatchedPhones() []string {
	return idx.matched
}

// UnmatchedCallPhones counts distinct called numbers with no lead. These
// are out-of-universe, not errors.
func (idx *CorrelationIndex) UnmatchedCallPhones() int {
	return len(idx.CallsByPhone) - len(idx.matched)
}

// LeadsNeverCalled counts leads with no call activity.
func (idx *CorrelationIndex) LeadsNeverCalled() int {
	return len(idx.LeadByPhone) - len(idx.matched)
}
