package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/waha"
	"github.com/spf13/cobra"
)

func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Probe the WAHA upstream for available endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			client := waha.New(cfg.Waha, log)
			resp := client.DiscoverEndpoints(context.Background())
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
}
