package usecase

import (
	"context"
	"log"
	"time"

	"github.com/brunovl/leadbridge/internal/entity"
)

// SyncLeadsUseCase appends to the lead sheet exactly the source leads
// whose id is not yet there. Append-only: existing rows are never touched,
// so a crashed run is safe to repeat.
type SyncLeadsUseCase struct {
	Leads   LeadSource
	Store   RowStore
	FormIDs []string
	RunLog  RunLogger
}

type SyncLeadsOutput struct {
	AlreadySynced int
	Fetched       int
	Added         int
}

func (uc *SyncLeadsUseCase) Execute(ctx context.Context) (*SyncLeadsOutput, error) {
	started := time.Now()

	if len(uc.FormIDs) == 0 {
		return nil, &DomainError{
			Code:    "NO_FORMS_CONFIGURED",
			Message: "no lead form ids configured",
		}
	}

	log.Println("checking existing leads in sheet...")
	existing, err := uc.existingIDs(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "ROWSTORE_ERROR",
			Message: "failed to read existing lead ids: " + err.Error(),
		}
	}
	log.Printf("%d leads already in sheet", len(existing))

	var all []entity.Lead
	for _, formID := range uc.FormIDs {
		log.Printf("fetching leads from form %s...", formID)
		leads, err := uc.Leads.ListFormLeads(ctx, formID)
		if err != nil {
			return nil, &TechnicalError{
				Code:    "META_ERROR",
				Message: "failed to list leads for form " + formID + ": " + err.Error(),
			}
		}
		all = append(all, leads...)
	}
	log.Printf("%d total leads on the ad platform", len(all))

	var delta []entity.Lead
	for _, lead := range all {
		if _, ok := existing[lead.ID]; ok {
			continue
		}
		delta = append(delta, lead)
	}

	out := &SyncLeadsOutput{
		AlreadySynced: len(existing),
		Fetched:       len(all),
		Added:         len(delta),
	}

	if len(delta) == 0 {
		log.Println("sheet is already up to date")
		recordRun(ctx, uc.RunLog, "sync-leads", 0, MatchStatusUnknown, started)
		return out, nil
	}

	rows := make([][]string, 0, len(delta))
	for _, lead := range delta {
		rows = append(rows, lead.ToRow())
	}
	// One batched append; the store chunks internally.
	if err := uc.Store.Append(ctx, LeadRange, rows); err != nil {
		return nil, &TechnicalError{
			Code:    "ROWSTORE_ERROR",
			Message: "failed to append new leads: " + err.Error(),
		}
	}

	for _, lead := range delta {
		name := lead.FullName
		if name == "" {
			name = "Unknown"
		}
		log.Printf("  - %s (%s)", name, lead.ID)
	}

	recordRun(ctx, uc.RunLog, "sync-leads", len(rows), MatchStatusUnknown, started)
	return out, nil
}

// existingIDs reads the lead-ID column once, skipping the header row.
func (uc *SyncLeadsUseCase) existingIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := uc.Store.GetRange(ctx, LeadIDColumn)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{})
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 0 && row[0] != "" {
			ids[row[0]] = struct{}{}
		}
	}
	return ids, nil
}
