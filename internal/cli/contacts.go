package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/waha"
	"github.com/spf13/cobra"
)

func newContactsCmd() *cobra.Command {
	var (
		limit   int
		offset  int
		session string
	)

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List contacts from the WAHA upstream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			client := waha.New(cfg.Waha, log)
			resp := client.GetAllContacts(context.Background(), waha.ListQuery{
				Limit:     limit,
				Offset:    offset,
				SortBy:    "name",
				SortOrder: "asc",
				Session:   session,
			})
			if !resp.Success {
				return fmt.Errorf("%s (%s)", resp.Error, resp.Code)
			}

			out, err := json.MarshalIndent(resp.Data, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum contacts to fetch")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")
	cmd.Flags().StringVar(&session, "session", "", "WAHA session (default from config)")

	return cmd
}
