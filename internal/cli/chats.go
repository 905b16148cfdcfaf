package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/waha"
	"github.com/spf13/cobra"
)

func newChatsCmd() *cobra.Command {
	var (
		limit   int
		offset  int
		session string
	)

	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List chats from the WAHA upstream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			client := waha.New(cfg.Waha, log)
			resp := client.GetAllChats(context.Background(), waha.ListQuery{
				Limit:     limit,
				Offset:    offset,
				SortBy:    "timestamp",
				SortOrder: "desc",
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

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum chats to fetch")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")
	cmd.Flags().StringVar(&session, "session", "", "WAHA session (default from config)")

	return cmd
}
