package usecase

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brunovl/leadbridge/internal/entity"
	"github.com/brunovl/leadbridge/internal/fetch"
	"github.com/brunovl/leadbridge/internal/phone"
)

// AnalysisHeaders is the column order of the call analysis sheet (A:O).
var AnalysisHeaders = []string{
	"Lead Name", "Phone", "Email", "Company", "Platform", "Campaign",
	"Total Calls", "Connected", "Not Answered", "Voicemail",
	"Last Called", "Last Disposition", "Last Agent", "All Agents",
	"Call History (last 10)",
}

// SyncCallsUseCase correlates calls since the ads-live cutoff with the
// synced leads and rewrites the call analysis sheet, one row per lead with
// call activity, busiest first.
type SyncCallsUseCase struct {
	Calls    CallLister
	Store    RowStore
	AdsStart time.Time
	RunLog   RunLogger
	Options  fetch.Options
}

type SyncCallsOutput struct {
	LeadsWithPhone int
	CallsFetched   int
	Matched        int
	UnmatchedCalls int
	NeverCalled    int
}

func (uc *SyncCallsUseCase) Execute(ctx context.Context) (*SyncCallsOutput, error) {
	started := time.Now()

	log.Println("loading leads from the lead sheet...")
	leads, err := uc.loadLeads(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	log.Printf("%d leads with phone numbers", len(leads))

	log.Printf("fetching calls since ads went live (%s)...", uc.AdsStart.Format("2006-01-02"))
	// The listing is newest first, so the first call older than the cutoff
	// ends the fetch.
	stop := func(c entity.Call) bool {
		at := c.OccurredAt()
		return !at.IsZero() && at.Before(uc.AdsStart)
	}
	res, err := fetch.All(ctx, uc.Calls.ListCalls, stop, uc.Options)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "JUSTCALL_ERROR",
			Message: "failed to fetch calls: " + err.Error(),
		}
	}
	log.Printf("%d total calls fetched", len(res.Items))

	idx := BuildCorrelationIndex(leads, res.Items)
	matched := idx.MatchedPhones()
	log.Printf("%d leads have call activity", len(matched))
	log.Printf("%d called numbers without a lead (ignored)", idx.UnmatchedCallPhones())

	type analysisRow struct {
		total int
		cells []string
	}
	rows := make([]analysisRow, 0, len(matched))
	for _, key := range matched {
		lead := idx.LeadByPhone[key]
		s := SummarizeCalls(idx.CallsByPhone[key])
		rows = append(rows, analysisRow{
			total: s.Total,
			cells: []string{
				lead.FullName,
				"+" + key,
				lead.Email,
				lead.CompanyName,
				lead.Platform,
				lead.CampaignName,
				strconv.Itoa(s.Total),
				strconv.Itoa(s.Connected),
				strconv.Itoa(s.Missed),
				strconv.Itoa(s.Voicemail),
				s.LastDate,
				s.LastDisposition,
				s.LastAgent,
				strings.Join(s.Agents, ", "),
				s.History,
			},
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].total > rows[j].total })

	if err := uc.Store.EnsureSheet(ctx, AnalysisSheet); err != nil {
		return nil, storeError(err)
	}
	if err := uc.Store.Clear(ctx, AnalysisRange); err != nil {
		return nil, storeError(err)
	}
	values := make([][]string, 0, len(rows)+1)
	values = append(values, AnalysisHeaders)
	for _, row := range rows {
		values = append(values, row.cells)
	}
	if err := uc.Store.Update(ctx, AnalysisSheet+"!A1", values); err != nil {
		return nil, storeError(err)
	}

	recordRun(ctx, uc.RunLog, "sync-calls", len(rows), MatchStatusUnknown, started)

	return &SyncCallsOutput{
		LeadsWithPhone: len(leads),
		CallsFetched:   len(res.Items),
		Matched:        len(matched),
		UnmatchedCalls: idx.UnmatchedCallPhones(),
		NeverCalled:    idx.LeadsNeverCalled(),
	}, nil
}

// loadLeads reads previously synced leads back from the sheet, dropping
// the header row and any lead with no usable phone.
func (uc *SyncCallsUseCase) loadLeads(ctx context.Context) ([]entity.Lead, error) {
	rows, err := uc.Store.GetRange(ctx, LeadRange)
	if err != nil {
		return nil, err
	}

	var leads []entity.Lead
	for i, row := range rows {
		if i == 0 {
			continue
		}
		lead := entity.LeadFromRow(row)
		if phone.Normalize(lead.Phone) == "" {
			continue
		}
		leads = append(leads, lead)
	}
	return leads, nil
}
