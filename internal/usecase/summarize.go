package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brunovl/leadbridge/internal/entity"
)

// historyLimit caps the rendered call history per contact.
const historyLimit = 10

// SummarizeCalls reduces one contact's calls into a CallSummary. The input
// must be non-empty; callers only invoke this for phones with at least one
// call. Pure function of the input multiset and its fetch order.
func SummarizeCalls(calls []entity.Call) entity.CallSummary {
	sorted := make([]entity.Call, len(calls))
	copy(sorted, calls)
	// Newest first; stable so fetch order breaks instant ties.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt().After(sorted[j].OccurredAt())
	})

	summary := entity.CallSummary{Total: len(calls)}
	for _, call := range calls {
		switch call.Type {
		case entity.CallTypeAnswered:
			summary.Connected++
		case entity.CallTypeUnanswered:
			summary.Missed++
		case entity.CallTypeVoicemail:
			summary.Voicemail++
		}
	}

	last := sorted[0]
	summary.LastDate = last.CallDate + " " + last.CallTime
	summary.LastDisposition = last.Disposition
	summary.LastAgent = last.AgentName

	seen := make(map[string]bool)
	for _, call := range calls {
		if call.AgentName != "" && !seen[call.AgentName] {
			seen[call.AgentName] = true
			summary.Agents = append(summary.Agents, call.AgentName)
		}
	}

	limit := historyLimit
	if len(sorted) < limit {
		limit = len(sorted)
	}
	lines := make([]string, 0, limit)
	for _, call := range sorted[:limit] {
		lines = append(lines, fmt.Sprintf("%s %s | %s | %s",
			call.CallDate, call.CallTime, call.Outcome(), call.AgentName))
	}
	summary.History = strings.Join(lines, "\n")

	return summary
}
