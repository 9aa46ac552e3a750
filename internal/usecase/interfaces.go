package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/brunovl/leadbridge/internal/entity"
	"github.com/brunovl/leadbridge/internal/fetch"
	"github.com/brunovl/leadbridge/internal/infra/database"
)

// Sheet names and ranges shared by the sync use cases.
const (
	LeadSheet       = "Sheet1"
	LeadRange       = "Sheet1!A:J"
	LeadIDColumn    = "Sheet1!B:B"
	LeadHeaderRange = "Sheet1!A1:J1"

	DumpSheet = "Raw Call Dump"
	DumpRange = "Raw Call Dump!A:S"

	AnalysisSheet = "Call Analysis"
	AnalysisRange = "Call Analysis!A:O"
)

// RowStore is the destination tabular store: append-only, range-readable,
// addressed by sheet!range. Implemented by the Sheets REST client and the
// Postgres mirror.
type RowStore interface {
	GetRange(ctx context.Context, rng string) ([][]string, error)
	Clear(ctx context.Context, rng string) error
	Update(ctx context.Context, rng string, values [][]string) error
	Append(ctx context.Context, rng string, rows [][]string) error
	EnsureSheet(ctx context.Context, title string) error
}

// CallLister fetches one page of the telephony call listing, newest first.
type CallLister interface {
	ListCalls(ctx context.Context, page int) (fetch.Page[entity.Call], error)
}

// LeadSource lists every lead of one ad-platform form.
type LeadSource interface {
	ListFormLeads(ctx context.Context, formID string) ([]entity.Lead, error)
}

// LeadFetcher loads a single lead by its leadgen id.
type LeadFetcher interface {
	FetchLead(ctx context.Context, leadgenID string) (entity.Lead, error)
}

// LeadNotifier posts a new-lead notification to the chat channel.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead entity.Lead) error
}

// CampaignEnroller adds a contact to the autodialer campaign.
type CampaignEnroller interface {
	AddToCampaign(ctx context.Context, campaignID, name, email, phone string) error
}

// EmailSender mails the new-lead notification.
type EmailSender interface {
	SendLeadNotification(lead entity.Lead) error
}

// RunLogger records finished sync runs. Optional everywhere it appears.
type RunLogger interface {
	Record(ctx context.Context, run database.SyncRun) error
}

// recordRun logs the run to the run log when one is configured. Run-log
// failures are diagnostic only and never fail the sync.
func recordRun(ctx context.Context, logger RunLogger, kind string, rowsWritten int, matchStatus string, started time.Time) {
	if logger == nil {
		return
	}
	run := database.SyncRun{
		ID:          uuid.New().String(),
		Kind:        kind,
		RowsWritten: rowsWritten,
		MatchStatus: matchStatus,
		StartedAt:   started,
		Duration:    time.Since(started),
	}
	if err := logger.Record(ctx, run); err != nil {
		log.Printf("run log: %v", err)
	}
}
