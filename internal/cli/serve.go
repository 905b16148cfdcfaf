package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/gateway"
	"github.com/soyeahso/wagate/internal/logging"
	"github.com/soyeahso/wagate/internal/store"
	"github.com/soyeahso/wagate/internal/waha"
	"github.com/soyeahso/wagate/internal/webhook"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			// The --log-level flag wins over file config.
			if logLevel == "" {
				log = logging.New(nil, cfg.Logging.Level, cfg.Logging.Style)
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			var rec store.Recorder
			if cfg.Store.Enabled {
				db, err := store.Open(cfg.Store.Path, log)
				if err != nil {
					return fmt.Errorf("opening database: %w", err)
				}
				defer db.Close()
				rec = store.NewSQLiteRecorder(db)
				log.Info().Str("path", cfg.Store.Path).Msg("using SQLite analytics store")
			} else {
				rec = store.NewMemoryRecorder()
				log.Info().Msg("using in-memory analytics store")
			}

			client := waha.New(cfg.Waha, log)
			dispatcher := webhook.New(client, rec, cfg.AutoReply, log)
			srv := gateway.New(cfg, client, dispatcher, log)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, custom)")

	return cmd
}
