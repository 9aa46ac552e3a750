package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brunovl/leadbridge/internal/fetch"
	"github.com/brunovl/leadbridge/internal/infra/integration/justcall"
	"github.com/brunovl/leadbridge/internal/usecase"
)

func syncCallsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-calls",
		Short: "Correlate recent calls with sheet leads and rebuild the analysis sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv("JUSTCALL_API_KEY", "JUSTCALL_API_SECRET")
			if err != nil {
				return err
			}
			defer e.close()

			uc := &usecase.SyncCallsUseCase{
				Calls:    justcall.NewClient(e.cfg.JustCallAPIKey, e.cfg.JustCallAPISecret, ""),
				Store:    e.store,
				AdsStart: e.cfg.AdsStart,
				RunLog:   e.runLogger(),
				Options:  fetch.DefaultOptions(),
			}

			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Leads with phone:   %d\n", out.LeadsWithPhone)
			fmt.Printf("Calls fetched:      %d\n", out.CallsFetched)
			fmt.Printf("Matched leads:      %d\n", out.Matched)
			fmt.Printf("Unmatched callers:  %d\n", out.UnmatchedCalls)
			fmt.Printf("Never called:       %d\n", out.NeverCalled)
			return nil
		},
	}
}
