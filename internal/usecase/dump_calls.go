package usecase

import (
	"context"
	"log"
	"time"

	"github.com/brunovl/leadbridge/internal/entity"
	"github.com/brunovl/leadbridge/internal/fetch"
)

// Match status values for the written-vs-reported diagnostic.
const (
	MatchStatusMatch    = "MATCH"
	MatchStatusMismatch = "MISMATCH"
	MatchStatusUnknown  = "UNKNOWN"
)

// DumpCallsUseCase rebuilds the raw call dump sheet from scratch: every
// call the provider has, cleared and rewritten, then checked against the
// provider's reported total.
type DumpCallsUseCase struct {
	Calls   CallLister
	Store   RowStore
	RunLog  RunLogger
	Options fetch.Options
}

type DumpCallsOutput struct {
	Fetched      int
	RowsWritten  int
	TotalFromAPI int // -1 when the provider never reported one
	MatchStatus  string
}

func (uc *DumpCallsUseCase) Execute(ctx context.Context) (*DumpCallsOutput, error) {
	started := time.Now()

	log.Println("fetching all calls from JustCall...")
	res, err := fetch.All(ctx, uc.Calls.ListCalls, nil, uc.Options)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "JUSTCALL_ERROR",
			Message: "failed to fetch calls: " + err.Error(),
		}
	}
	log.Printf("finished fetching calls, total fetched: %d", len(res.Items))

	if err := uc.Store.EnsureSheet(ctx, DumpSheet); err != nil {
		return nil, storeError(err)
	}
	if err := uc.Store.Clear(ctx, DumpRange); err != nil {
		return nil, storeError(err)
	}
	if err := uc.Store.Update(ctx, DumpSheet+"!A1", [][]string{entity.CallDumpHeaders}); err != nil {
		return nil, storeError(err)
	}

	rows := make([][]string, 0, len(res.Items))
	for _, call := range res.Items {
		rows = append(rows, call.ToDumpRow())
	}
	if len(rows) > 0 {
		if err := uc.Store.Append(ctx, DumpSheet+"!A2", rows); err != nil {
			return nil, storeError(err)
		}
	}

	// Diagnostic only: a mismatch is reported, never fatal.
	match := MatchStatusUnknown
	if res.TotalCount >= 0 {
		if len(rows) == res.TotalCount {
			match = MatchStatusMatch
		} else {
			match = MatchStatusMismatch
		}
	}

	recordRun(ctx, uc.RunLog, "dump-calls", len(rows), match, started)

	return &DumpCallsOutput{
		Fetched:      len(res.Items),
		RowsWritten:  len(rows),
		TotalFromAPI: res.TotalCount,
		MatchStatus:  match,
	}, nil
}
