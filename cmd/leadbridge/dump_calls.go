package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brunovl/leadbridge/internal/fetch"
	"github.com/brunovl/leadbridge/internal/infra/integration/justcall"
	"github.com/brunovl/leadbridge/internal/usecase"
)

func dumpCallsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-calls",
		Short: "Fetch every call from JustCall and rewrite the raw dump sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv("JUSTCALL_API_KEY", "JUSTCALL_API_SECRET")
			if err != nil {
				return err
			}
			defer e.close()

			uc := &usecase.DumpCallsUseCase{
				Calls:   justcall.NewClient(e.cfg.JustCallAPIKey, e.cfg.JustCallAPISecret, ""),
				Store:   e.store,
				RunLog:  e.runLogger(),
				Options: fetch.DefaultOptions(),
			}

			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Calls fetched:  %d\n", out.Fetched)
			fmt.Printf("Rows written:   %d\n", out.RowsWritten)
			if out.TotalFromAPI >= 0 {
				fmt.Printf("API total:      %d\n", out.TotalFromAPI)
			}
			fmt.Printf("Status:         %s\n", out.MatchStatus)
			return nil
		},
	}
}
