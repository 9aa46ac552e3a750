package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brunovl/leadbridge/internal/infra/integration/meta"
	"github.com/brunovl/leadbridge/internal/usecase"
)

func syncLeadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-leads",
		Short: "Backfill leads from the configured Meta forms into the lead sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv("META_PAGE_ACCESS_TOKEN", "META_FORM_IDS")
			if err != nil {
				return err
			}
			defer e.close()

			uc := &usecase.SyncLeadsUseCase{
				Leads:   meta.NewClient(e.cfg.MetaAccessToken, ""),
				Store:   e.store,
				FormIDs: e.cfg.MetaFormIDs,
				RunLog:  e.runLogger(),
			}

			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Already synced: %d\n", out.AlreadySynced)
			fmt.Printf("Fetched:        %d\n", out.Fetched)
			fmt.Printf("Added:          %d\n", out.Added)
			return nil
		},
	}
}
