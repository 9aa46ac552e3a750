package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/brunovl/leadbridge/internal/entity"
	"github.com/brunovl/leadbridge/internal/phone"
)

// EffectResult is the outcome of one side-effect branch.
type EffectResult struct {
	Service string
	Err     error
}

func (r EffectResult) Status() string {
	if r.Err != nil {
		return "rejected"
	}
	return "fulfilled"
}

// ProcessLeadUseCase fans one new lead out to its side effects: chat
// notification, sheet row, autodialer enrollment and (when configured)
// email. The branches are causally independent, so they run concurrently
// on an immutable snapshot of the lead; a failure in one never blocks or
// rolls back the others.
type ProcessLeadUseCase struct {
	Notifier   LeadNotifier
	Store      RowStore
	Enroller   CampaignEnroller
	Mailer     EmailSender
	CampaignID string
}

func (uc *ProcessLeadUseCase) Execute(ctx context.Context, lead entity.Lead) []EffectResult {
	type effect struct {
		service string
		run     func() error
	}

	effects := []effect{
		{"Slack", func() error { return uc.Notifier.NotifyLead(ctx, lead) }},
		{"Sheets", func() error { return uc.appendLeadRow(ctx, lead) }},
		{"JustCall", func() error {
			return uc.Enroller.AddToCampaign(ctx, uc.CampaignID, lead.FullName, lead.Email, phone.Normalize(lead.Phone))
		}},
	}
	if uc.Mailer != nil {
		effects = append(effects, effect{"Email", func() error { return uc.Mailer.SendLeadNotification(lead) }})
	}

	results := make([]EffectResult, len(effects))
	var wg sync.WaitGroup
	for i, e := range effects {
		wg.Add(1)
		go func(i int, e effect) {
			defer wg.Done()
			results[i] = EffectResult{Service: e.service, Err: e.run()}
		}(i, e)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			log.Printf("%s failed for lead %s: %v", r.Service, lead.ID, r.Err)
		}
	}
	return results
}

// appendLeadRow writes the header row when the sheet is still blank, then
// appends the lead.
func (uc *ProcessLeadUseCase) appendLeadRow(ctx context.Context, lead entity.Lead) error {
	header, err := uc.Store.GetRange(ctx, LeadHeaderRange)
	if err != nil {
		return err
	}
	if len(header) == 0 || len(header[0]) == 0 {
		if err := uc.Store.Update(ctx, LeadSheet+"!A1", [][]string{entity.LeadHeaders}); err != nil {
			return err
		}
		log.Println("headers written to lead sheet")
	}
	return uc.Store.Append(ctx, LeadRange, [][]string{lead.ToRow()})
}
