package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/version"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe a running wagate instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("wagate %s (commit %s)\n\n", version.Version, version.Commit)

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			fmt.Printf("Config:   %s\n", cfgFile)
			fmt.Printf("Upstream: %s\n", cfg.Waha.URL)
			fmt.Printf("Server:   port=%d bind=%s\n", cfg.Server.Port, cfg.Server.Bind)
			fmt.Printf("Store:    enabled=%v path=%s\n", cfg.Store.Enabled, cfg.Store.Path)
			fmt.Println()

			url := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
			httpClient := &http.Client{Timeout: 5 * time.Second}
			resp, err := httpClient.Get(url)
			if err != nil {
				fmt.Println("Gateway:  not running")
				return nil
			}
			defer resp.Body.Close()

			var envelope struct {
				Data struct {
					Status        string  `json:"status"`
					UptimeSeconds float64 `json:"uptime_seconds"`
				} `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
				fmt.Printf("Gateway:  responded with unparseable body (HTTP %d)\n", resp.StatusCode)
				return nil
			}

			fmt.Printf("Gateway:  %s (HTTP %d), up %s\n",
				envelope.Data.Status,
				resp.StatusCode,
				(time.Duration(envelope.Data.UptimeSeconds) * time.Second).String())

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}
}
